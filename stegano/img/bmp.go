package img
import (
	"bytes"
	"image"
	"golang.org/x/image/bmp"
)

func decodeBMP( data []byte ) (image.Image, error) {
	return bmp.Decode( bytes.NewReader( data ) )
}

func decodeBMPConfig( data []byte ) (image.Config, error) {
	return bmp.DecodeConfig( bytes.NewReader( data ) )
}
