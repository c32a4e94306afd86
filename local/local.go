package local
import (
	"time"
	"net/http"

	"imgsteg/util"
	"imgsteg/config"
)

/*
 * package local runs the HTTP front of the codec: a couple of static pages
 * with encode/decode forms and the JSON/multipart API behind them.
 */
func RunImgStegServer( fullConfig *config.FullConfig, logger *util.Logger ) error {

	loader, err := fullConfig.StegConfig.Loader()
	if err != nil {
		return err
	}
	api := NewApi( &fullConfig.ServerConfig, &fullConfig.StegConfig, loader, logger )

	server := &http.Server{
		Addr: fullConfig.ServerConfig.Address,
		Handler: api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.LogInfo( "Listening and serving at address " + fullConfig.ServerConfig.Address )
	util.DebugPrintln( util.CyanColor + "Listening and serving at address " + fullConfig.ServerConfig.Address + util.ResetColor )
	return server.ListenAndServe()
}
