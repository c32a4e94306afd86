package img
import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	ErrFileTypeNotAllowed	= errors.New("img: file type is not allowed")
	ErrUnsupportedFormat	= errors.New("img: unsupported image format")
	ErrEmptyImage		= errors.New("img: image has no pixels")
	ErrCorruptImage		= errors.New("img: corrupt image data")
	ErrImageTooLarge	= errors.New("img: image dimensions exceed the limit")
)

const (
	FormatPNG = "png"
	FormatJPEG = "jpeg"
	FormatGIF = "gif"
	FormatBMP = "bmp"
	FormatTIFF = "tiff"
	FormatWebP = "webp"
)

const (
	DefaultMaxDimension = 32768
	DefaultMaxPixels = 64 * 1024 * 1024	// 256 MB as NRGBA
)

// Limits bound the size an image header may declare.
type Limits struct {
	MaxDimension	int	// pixels per side
	MaxPixels	int64	// width * height
}

var DefaultLimits = Limits{
	MaxDimension: DefaultMaxDimension,
	MaxPixels: DefaultMaxPixels,
}

// zero or negative fields fall back to the defaults
func(l Limits) Check( width, height int ) error {
	maxDimension, maxPixels := l.MaxDimension, l.MaxPixels
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if width > maxDimension || height > maxDimension {
		return fmt.Errorf("%w: %dx%d, at most %d pixels per side",
			ErrImageTooLarge, width, height, maxDimension)
	}
	if pixels := int64(width) * int64(height); pixels > maxPixels {
		return fmt.Errorf("%w: %dx%d is %d pixels, at most %d",
			ErrImageTooLarge, width, height, pixels, maxPixels)
	}
	return nil
}

// detect image format by its magic bytes
func DetectFormat( data []byte ) string {
	switch {
	case bytes.HasPrefix( data, []byte("\x89PNG\r\n\x1a\n") ):
		return FormatPNG
	case bytes.HasPrefix( data, []byte{ 0xff, 0xd8, 0xff } ):
		return FormatJPEG
	case bytes.HasPrefix( data, []byte("GIF8") ):
		return FormatGIF
	case bytes.HasPrefix( data, []byte("BM") ):
		return FormatBMP
	case bytes.HasPrefix( data, []byte("II*\x00") ), bytes.HasPrefix( data, []byte("MM\x00*") ):
		return FormatTIFF
	case len(data) >= 12 && bytes.Equal( data[:4], []byte("RIFF") ) && bytes.Equal( data[8:12], []byte("WEBP") ):
		return FormatWebP
	}
	return ""
}

// header reader and full decoder of one carrier format
type formatDecoder struct {
	config	func( []byte ) (image.Config, error)
	decode	func( []byte ) (image.Image, error)
}

var decoders = map[string]formatDecoder{
	FormatPNG:	{ decodePNGConfig, decodePNG },
	FormatJPEG:	{ decodeJPEGConfig, decodeJPEG },
	FormatGIF:	{ decodeGIFConfig, decodeGIF },
	FormatBMP:	{ decodeBMPConfig, decodeBMP },
	FormatTIFF:	{ decodeTIFFConfig, decodeTIFF },
	FormatWebP:	{ decodeWebPConfig, decodeWebP },
}

// Decode turns any supported carrier into a 4-channel 8-bit grid.
func Decode( data []byte ) (*image.NRGBA, string, error) {
	return DecodeWithLimits( data, DefaultLimits )
}

/*
 * DecodeWithLimits reads the declared size from the header first: a few
 * kilobytes of compressed data can declare gigabytes of pixels, so nothing
 * is allocated for images over the limits.
 */
func DecodeWithLimits( data []byte, limits Limits ) (*image.NRGBA, string, error) {
	format := DetectFormat( data )
	dec, ok := decoders[format]
	if !ok {
		return nil, "", ErrUnsupportedFormat
	}

	conf, err := dec.config( data )
	if err != nil {
		return nil, format, fmt.Errorf("%w: %s: %s", ErrCorruptImage, format, err.Error())
	}
	if err = limits.Check( conf.Width, conf.Height ); err != nil {
		return nil, format, err
	}

	src, err := dec.decode( data )
	if err != nil {
		return nil, format, fmt.Errorf("%w: %s: %s", ErrCorruptImage, format, err.Error())
	}
	grid := toNRGBA( src )
	if grid.Bounds().Empty() {
		return nil, format, ErrEmptyImage
	}
	return grid, format, nil
}

// copy of src rebased at (0, 0); NRGBA sources are copied exactly,
// translucent pixels included.
func toNRGBA( src image.Image ) *image.NRGBA {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA( image.Rect( 0, 0, width, height ) )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert( src.At( bounds.Min.X + x, bounds.Min.Y + y ) ).(color.NRGBA)
			dst.SetNRGBA( x, y, c )
		}
	}
	return dst
}
