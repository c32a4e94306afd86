package img
import (
	"bytes"
	"image"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

func decodeTIFF( data []byte ) (image.Image, error) {
	return tiff.Decode( bytes.NewReader( data ) )
}

func decodeWebP( data []byte ) (image.Image, error) {
	return webp.Decode( bytes.NewReader( data ) )
}

func decodeTIFFConfig( data []byte ) (image.Config, error) {
	return tiff.DecodeConfig( bytes.NewReader( data ) )
}

func decodeWebPConfig( data []byte ) (image.Config, error) {
	return webp.DecodeConfig( bytes.NewReader( data ) )
}
