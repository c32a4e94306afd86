package local
import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imgsteg/config"
	"imgsteg/stegano/img"
	"imgsteg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes( t *testing.T, w, h int ) []byte {
	m := image.NewNRGBA( image.Rect( 0, 0, w, h ) )
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA( x, y, color.NRGBA{ uint8(x * 7), uint8(y * 3), 200, 255 } )
		}
	}
	buf := new(bytes.Buffer)
	require.NoError( t, png.Encode( buf, m ) )
	return buf.Bytes()
}

// a PNG header declaring w x h pixels, no pixel data
func declaredPNG( w, h uint32 ) []byte {
	ihdr := []byte("IHDR")
	ihdr = binary.BigEndian.AppendUint32( ihdr, w )
	ihdr = binary.BigEndian.AppendUint32( ihdr, h )
	ihdr = append( ihdr, 8, 6, 0, 0, 0 )

	data := []byte("\x89PNG\r\n\x1a\n")
	data = binary.BigEndian.AppendUint32( data, 13 )
	data = append( data, ihdr... )
	return binary.BigEndian.AppendUint32( data, crc32.ChecksumIEEE( ihdr ) )
}

func upload( t *testing.T, route, filename string, data []byte, message *string ) *http.Request {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter( body )
	if data != nil {
		fw, err := mw.CreateFormFile( ImageField, filename )
		require.NoError( t, err )
		fw.Write( data )
	}
	if message != nil {
		require.NoError( t, mw.WriteField( MessageField, *message ) )
	}
	require.NoError( t, mw.Close() )

	r := httptest.NewRequest( http.MethodPost, route, body )
	r.Header.Set( "Content-Type", mw.FormDataContentType() )
	return r
}

func testApi( t *testing.T, compress bool ) (*Api, string) {
	dir := t.TempDir()
	conf := config.DefaultConfig( dir )
	conf.ServerConfig.Compress = compress
	conf.Logger.Filename = filepath.Join( dir, "log.log" )
	conf.Logger.Mode = util.Error | util.Warning | util.Info
	require.NoError( t, conf.Validate() )

	loader, err := conf.StegConfig.Loader()
	require.NoError( t, err )
	return NewApi( &conf.ServerConfig, &conf.StegConfig, loader, util.NewLogger( &conf.Logger ) ), dir
}

func serve( a *Api, r *http.Request ) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP( w, r )
	return w
}

func TestEncodeDecode( t *testing.T ) {
	a, dir := testApi( t, false )
	message := "ab🍌e\u0301"

	w := serve( a, upload( t, "/api/encode", "test-image.png", pngBytes( t, 10, 10 ), &message ) )
	require.Equal( t, http.StatusOK, w.Code, w.Body.String() )
	assert.Equal( t, "image/png", w.Header().Get("Content-Type") )
	assert.Contains( t, w.Header().Get("Content-Disposition"), `filename="modified_image.png"` )
	encoded := w.Body.Bytes()
	assert.Equal( t, img.FormatPNG, img.DetectFormat( encoded ) )

	w = serve( a, upload( t, "/api/decode", "modified_image.png", encoded, nil ) )
	require.Equal( t, http.StatusOK, w.Code, w.Body.String() )
	assert.Equal( t, "text/plain; charset=utf-8", w.Header().Get("Content-Type") )
	assert.Equal( t, message, w.Body.String() )

	logs, err := util.ReadLog( filepath.Join( dir, "log.log" ), "" )
	require.NoError( t, err )
	assert.Contains( t, logs, "[encode] 5 characters (4 graphemes) into test-image.png" )
	assert.Contains( t, logs, "[decode] 5 characters from modified_image.png" )
}

func TestApiErrors( t *testing.T ) {
	a, _ := testApi( t, false )
	short := "x"
	long := strings.Repeat( "x", 49 )
	empty := ""
	wide := string( rune(0x10FFFF) )
	data := pngBytes( t, 10, 10 )

	tests := []struct{
		name	string
		req	*http.Request
		status	int
	}{
		{ "not allowed", upload( t, "/api/encode", "test.exe", data, &short ), http.StatusBadRequest },
		{ "not an image", upload( t, "/api/encode", "test.png", []byte("text"), &short ), http.StatusBadRequest },
		{ "corrupt png", upload( t, "/api/decode", "test.png", data[:40], nil ), http.StatusBadRequest },
		{ "no file", upload( t, "/api/encode", "", nil, &short ), http.StatusBadRequest },
		{ "empty message", upload( t, "/api/encode", "test.png", data, &empty ), http.StatusBadRequest },
		{ "no message", upload( t, "/api/encode", "test.png", data, nil ), http.StatusBadRequest },
		{ "unsupported scalar", upload( t, "/api/encode", "test.png", data, &wide ), http.StatusBadRequest },
		{ "too long", upload( t, "/api/encode", "test.png", data, &long ), http.StatusRequestEntityTooLarge },
		{ "huge dimensions", upload( t, "/api/capacity", "bomb.png", declaredPNG( 8000, 9000 ), nil ), http.StatusRequestEntityTooLarge },
		{ "too wide", upload( t, "/api/encode", "bomb.png", declaredPNG( 40000, 2 ), &short ), http.StatusRequestEntityTooLarge },
		{ "too small", upload( t, "/api/decode", "test.png", pngBytes( t, 1, 40 ), nil ), http.StatusUnprocessableEntity },
		{ "not multipart", httptest.NewRequest( http.MethodPost, "/api/decode", strings.NewReader("x") ), http.StatusBadRequest },
	}
	for _, tt := range tests {
		w := serve( a, tt.req )
		if w.Code != tt.status {
			t.Errorf("%s: status %d, expected %d (%s)", tt.name, w.Code, tt.status, w.Body.String())
			continue
		}
		var resp Response
		if err := json.Unmarshal( w.Body.Bytes(), &resp ); err != nil {
			t.Errorf("%s: invalid error body: %s", tt.name, err.Error())
		} else {
			assert.False( t, resp.Ok, tt.name )
			assert.NotEmpty( t, resp.Message, tt.name )
		}
	}

	w := serve( a, httptest.NewRequest( http.MethodGet, "/api/encode", nil ) )
	assert.Equal( t, http.StatusMethodNotAllowed, w.Code )
}

func TestUploadLimit( t *testing.T ) {
	a, _ := testApi( t, false )
	a.sc.MaxUploadSize = 64
	message := "x"
	w := serve( a, upload( t, "/api/encode", "big.png", pngBytes( t, 10, 10 ), &message ) )
	assert.Equal( t, http.StatusRequestEntityTooLarge, w.Code )
}

func TestCapacityRoute( t *testing.T ) {
	a, _ := testApi( t, false )
	w := serve( a, upload( t, "/api/capacity", "c.png", pngBytes( t, 11, 4 ), nil ) )
	require.Equal( t, http.StatusOK, w.Code, w.Body.String() )

	var info img.Info
	require.NoError( t, json.Unmarshal( w.Body.Bytes(), &info ) )
	assert.Equal( t, img.Info{ Format: "png", Width: 11, Height: 4, PixelPairs: 20, MaxCharacters: 18 }, info )
}

func TestCompressedDecode( t *testing.T ) {
	a, _ := testApi( t, true )
	message := strings.Repeat( "a", 4000 )

	w := serve( a, upload( t, "/api/encode", "big.png", pngBytes( t, 90, 90 ), &message ) )
	require.Equal( t, http.StatusOK, w.Code, w.Body.String() )

	r := upload( t, "/api/decode", "big.png", w.Body.Bytes(), nil )
	r.Header.Set( "Accept-Encoding", "gzip" )
	w = serve( a, r )
	require.Equal( t, http.StatusOK, w.Code )
	assert.Equal( t, "gzip", w.Header().Get("Content-Encoding") )
	assert.Less( t, w.Body.Len(), len(message) )
}

func TestPages( t *testing.T ) {
	a, dir := testApi( t, false )
	page := filepath.Join( dir, "index.html" )
	require.NoError( t, os.WriteFile( page, []byte("<html>forms</html>"), 0600 ) )
	a.sc.Pages = map[string]string{
		"GET /{$}": page,
		"GET /missing": filepath.Join( dir, "missing.html" ),
	}

	w := serve( a, httptest.NewRequest( http.MethodGet, "/", nil ) )
	assert.Equal( t, http.StatusOK, w.Code )
	body, _ := io.ReadAll( w.Body )
	assert.Equal( t, "<html>forms</html>", string(body) )

	w = serve( a, httptest.NewRequest( http.MethodGet, "/missing", nil ) )
	assert.Equal( t, http.StatusNotFound, w.Code )
	assert.Equal( t, "Not found", w.Body.String() )
}
