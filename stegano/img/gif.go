package img
import (
	"bytes"
	"image"
	"image/gif"
)

// only the first frame of an animation is used
func decodeGIF( data []byte ) (image.Image, error) {
	return gif.Decode( bytes.NewReader( data ) )
}

// logical screen size, every frame fits into it
func decodeGIFConfig( data []byte ) (image.Config, error) {
	return gif.DecodeConfig( bytes.NewReader( data ) )
}
