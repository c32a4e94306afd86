package img
import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"imgsteg/stegano/decimal"
)

var DefaultAllowedFileTypes = []string{
	".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp",
}

/*
 * Loader sits between raw uploaded files and the decimal codec: it checks
 * the file extension against the allow-list it was built with, decodes the
 * carrier into a pixel grid and writes results back as PNG.
 */
type Loader struct {
	allowed		map[string]bool
	codec		*decimal.Codec
	limits		Limits
}

// Info describes how much an image can carry.
type Info struct {
	Format		string	`json:"format"`
	Width		int	`json:"width"`
	Height		int	`json:"height"`
	PixelPairs	int	`json:"pixel_pairs"`
	MaxCharacters	int	`json:"max_characters"`
}

func NormalizeExtension( ext string ) string {
	ext = strings.ToLower( strings.TrimSpace( ext ) )
	if ext != "" && !strings.HasPrefix( ext, "." ) {
		ext = "." + ext
	}
	return ext
}

func NewLoader( allowedFileTypes []string, codec *decimal.Codec ) *Loader {
	allowed := map[string]bool{}
	for _, ext := range allowedFileTypes {
		if ext = NormalizeExtension( ext ); ext != "" {
			allowed[ext] = true
		}
	}
	if codec == nil {
		codec = decimal.NewCodec( decimal.ScalarUnit, false )
	}
	return &Loader{
		allowed,
		codec,
		DefaultLimits,
	}
}

func(l *Loader) Codec() *decimal.Codec {
	return l.codec
}

func(l *Loader) SetLimits( limits Limits ) {
	l.limits = limits
}

func(l *Loader) IsAllowedFileType( filename string ) bool {
	return l.allowed[ NormalizeExtension( filepath.Ext( filename ) ) ]
}

func(l *Loader) Load( filename string, data []byte ) (*image.NRGBA, string, error) {
	if !l.IsAllowedFileType( filename ) {
		return nil, "", fmt.Errorf("%w: %q", ErrFileTypeNotAllowed, filepath.Ext( filename ))
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	return DecodeWithLimits( data, l.limits )
}

// Hide embeds message into the image and returns PNG bytes.
func(l *Loader) Hide( filename string, decoy []byte, message string ) ([]byte, error) {
	grid, _, err := l.Load( filename, decoy )
	if err != nil {
		return nil, err
	}
	if err = l.codec.Encode( grid, message ); err != nil {
		return nil, err
	}
	return EncodePNG( grid )
}

func(l *Loader) Reveal( filename string, decoy []byte ) (string, error) {
	grid, _, err := l.Load( filename, decoy )
	if err != nil {
		return "", err
	}
	return l.codec.Decode( grid )
}

func(l *Loader) Capacity( filename string, decoy []byte ) (*Info, error) {
	grid, format, err := l.Load( filename, decoy )
	if err != nil {
		return nil, err
	}
	bounds := grid.Bounds()
	return &Info{
		Format: format,
		Width: bounds.Dx(),
		Height: bounds.Dy(),
		PixelPairs: decimal.Capacity( bounds ),
		MaxCharacters: decimal.MaxCharacters( bounds ),
	}, nil
}
