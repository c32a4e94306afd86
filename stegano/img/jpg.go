package img
import (
	"bytes"
	"image"
	"image/jpeg"
)

// JPEG is fine as a carrier, the result is written as PNG anyway.
func decodeJPEG( data []byte ) (image.Image, error) {
	return jpeg.Decode( bytes.NewReader( data ) )
}

func decodeJPEGConfig( data []byte ) (image.Config, error) {
	return jpeg.DecodeConfig( bytes.NewReader( data ) )
}
