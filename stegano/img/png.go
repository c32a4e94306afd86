package img
import (
	"bytes"
	"image"
	"image/png"
)

func decodePNG( data []byte ) (image.Image, error) {
	return png.Decode( bytes.NewReader( data ) )
}

func decodePNGConfig( data []byte ) (image.Config, error) {
	return png.DecodeConfig( bytes.NewReader( data ) )
}

// PNG is the only output format: the digits would not survive a lossy one.
func EncodePNG( grid image.Image ) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := png.Encoder{ CompressionLevel: png.BestCompression }
	if err := enc.Encode( buf, grid ); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
