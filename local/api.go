package local
import (
	"os"
	"strings"
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"imgsteg/util"
	"imgsteg/config"
	"imgsteg/stegano/img"
)

type Api struct {
	sc		*config.ServerConfiguration
	stc		*config.SteganoConfig
	loader		*img.Loader
	logger		*util.Logger
}

func NewApi( sc *config.ServerConfiguration,
		stc *config.SteganoConfig,
		loader *img.Loader,
		logger *util.Logger ) *Api {
	return &Api{
		sc,
		stc,
		loader,
		logger,
	}
}

func(a *Api) Handler() http.Handler {
	mux := http.NewServeMux()

	// general user-related pages
	for uri, page := range a.sc.Pages {
		mux.HandleFunc( uri, func(w http.ResponseWriter, r *http.Request) {
			sendFile( page, a.sc.NotFoundPage, w )
		})
	}

	// embed a message, responds with the PNG
	mux.HandleFunc("POST /api/encode", func(w http.ResponseWriter, r *http.Request) {
		a.handleEncode( w, r )
	})

	// read a message back, responds with plain text
	mux.HandleFunc("POST /api/decode", func(w http.ResponseWriter, r *http.Request) {
		a.handleDecode( w, r )
	})

	mux.HandleFunc("POST /api/capacity", func(w http.ResponseWriter, r *http.Request) {
		a.handleCapacity( w, r )
	})

	if a.sc.Compress {
		return gzhttp.GzipHandler( mux )
	}
	return mux
}

func sendFile( filename, notFoundPage string, w http.ResponseWriter ) {
	htmlPage, err := os.ReadFile( filename )
	if err != nil {
		htmlPage, err = os.ReadFile( notFoundPage )
		w.WriteHeader( http.StatusNotFound )
		if err != nil {
			w.Write( []byte("Not found") )
		} else {
			w.Write( htmlPage )
		}
		return
	}
	switch {
	case strings.HasSuffix( filename, ".css" ):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix( filename, ".js" ):
		w.Header().Set("Content-Type", "text/javascript")
	}
	w.Write( htmlPage )
}
