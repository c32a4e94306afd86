package img
import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage( w, h int, alpha uint8 ) *image.NRGBA {
	img := image.NewNRGBA( image.Rect( 0, 0, w, h ) )
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA( x, y, color.NRGBA{
				uint8( x * 16 ),
				uint8( y * 16 ),
				uint8( 255 - x * y ),
				alpha,
			})
		}
	}
	return img
}

func carrier( t *testing.T, format string, src image.Image ) []byte {
	buf := new(bytes.Buffer)
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode( buf, src )
	case FormatJPEG:
		err = jpeg.Encode( buf, src, &jpeg.Options{ Quality: 90 } )
	case FormatGIF:
		err = gif.Encode( buf, src, nil )
	case FormatBMP:
		err = bmp.Encode( buf, src )
	case FormatTIFF:
		err = tiff.Encode( buf, src, nil )
	default:
		t.Fatalf("No encoder for %s", format)
	}
	if err != nil {
		t.Fatalf("Failed to build %s carrier: %s", format, err.Error())
	}
	return buf.Bytes()
}

func TestCarriers( t *testing.T ) {
	files := map[string]string{
		FormatPNG: "carrier.png",
		FormatJPEG: "carrier.JPG",
		FormatGIF: "carrier.gif",
		FormatBMP: "carrier.bmp",
		FormatTIFF: "carrier.tiff",
	}
	tests := []string{
		"Hello world!",
		"ab🍌",
		"Здравствуй, мир",
	}
	loader := NewLoader( DefaultAllowedFileTypes, nil )

	for format, filename := range files {
		data := carrier( t, format, testImage( 16, 16, 255 ) )
		if got := DetectFormat( data ); got != format {
			t.Errorf("Format detected as %q, expected %q", got, format)
			continue
		}
		for _, message := range tests {
			enc, err := loader.Hide( filename, data, message )
			if err != nil {
				t.Errorf("Failed to hide message in %s: %s", format, err.Error())
				continue
			}
			if DetectFormat( enc ) != FormatPNG {
				t.Errorf("Output of %s carrier is not PNG", format)
			}
			dec, err := loader.Reveal( "modified_image.png", enc )
			if err != nil {
				t.Errorf("Failed to reveal message from %s: %s", format, err.Error())
			} else if dec != message {
				t.Errorf("Steganography spoiled the message (%s). %q != %q", format, dec, message)
			}
		}
	}
}

func TestTranslucentPixelsSurvive( t *testing.T ) {
	src := testImage( 12, 4, 77 )
	src.SetNRGBA( 0, 0, color.NRGBA{ 13, 200, 251, 0 } )
	data := carrier( t, FormatPNG, src )

	loader := NewLoader( []string{"png"}, nil )
	enc, err := loader.Hide( "a.png", data, "alpha" )
	require.NoError( t, err )

	out, format, err := Decode( enc )
	require.NoError( t, err )
	assert.Equal( t, FormatPNG, format )
	for i := 3; i < len(out.Pix); i += 4 {
		assert.Equal( t, src.Pix[i], out.Pix[i] )
	}
	// channels keep their tens
	first := out.NRGBAAt( 0, 0 )
	assert.Equal( t, uint8(10), first.R )
	assert.Equal( t, uint8(200), first.G )
	assert.Equal( t, uint8(250), first.B )

	dec, err := loader.Reveal( "b.PNG", enc )
	require.NoError( t, err )
	assert.Equal( t, "alpha", dec )
}

func TestDecodeUnknown( t *testing.T ) {
	_, _, err := Decode( []byte("definitely not an image") )
	assert.ErrorIs( t, err, ErrUnsupportedFormat )

	_, _, err = Decode( []byte("\x89PNG\r\n\x1a\nbroken") )
	assert.Error( t, err )
	assert.NotErrorIs( t, err, ErrUnsupportedFormat )
	assert.ErrorIs( t, err, ErrCorruptImage )
}

func TestDetectFormat( t *testing.T ) {
	tests := map[string]string{
		"RIFF\x00\x00\x00\x00WEBPVP8 ": FormatWebP,
		"RIFF\x00\x00\x00\x00WAVEfmt ": "",
		"II*\x00rest": FormatTIFF,
		"MM\x00*rest": FormatTIFF,
		"GIF89a": FormatGIF,
		"BM": FormatBMP,
		"": "",
	}
	for data, want := range tests {
		assert.Equal( t, want, DetectFormat( []byte(data) ), "%q", data )
	}
}

// PNG signature and IHDR only: a few bytes declaring any size
func declaredPNG( w, h uint32 ) []byte {
	ihdr := []byte("IHDR")
	ihdr = binary.BigEndian.AppendUint32( ihdr, w )
	ihdr = binary.BigEndian.AppendUint32( ihdr, h )
	ihdr = append( ihdr, 8, 6, 0, 0, 0 )	// 8 bit RGBA, no interlace

	data := []byte("\x89PNG\r\n\x1a\n")
	data = binary.BigEndian.AppendUint32( data, 13 )
	data = append( data, ihdr... )
	return binary.BigEndian.AppendUint32( data, crc32.ChecksumIEEE( ihdr ) )
}

func TestDeclaredSizeLimit( t *testing.T ) {
	tests := []struct{
		name	string
		w, h	uint32
	}{
		{ "too wide", 40000, 2 },
		{ "too tall", 2, 40000 },
		{ "too many pixels", 20000, 20000 },
	}
	for _, tt := range tests {
		data := declaredPNG( tt.w, tt.h )
		if len(data) > 64 {
			t.Fatalf("%s: header is %d bytes", tt.name, len(data))
		}
		_, format, err := Decode( data )
		if !errors.Is( err, ErrImageTooLarge ) {
			t.Errorf("%s: expected ErrImageTooLarge, got %v", tt.name, err)
		}
		assert.Equal( t, FormatPNG, format, tt.name )
	}

	// within the limits the same header is just a truncated file
	_, _, err := Decode( declaredPNG( 16, 16 ) )
	assert.ErrorIs( t, err, ErrCorruptImage )
}

func TestLoaderLimits( t *testing.T ) {
	loader := NewLoader( DefaultAllowedFileTypes, nil )
	data := carrier( t, FormatPNG, testImage( 16, 16, 255 ) )

	_, err := loader.Capacity( "bomb.png", declaredPNG( 8000, 9000 ) )
	assert.ErrorIs( t, err, ErrImageTooLarge )

	loader.SetLimits( Limits{ MaxDimension: 16, MaxPixels: 255 } )
	_, err = loader.Hide( "a.png", data, "hi" )
	assert.ErrorIs( t, err, ErrImageTooLarge )

	loader.SetLimits( Limits{ MaxDimension: 16, MaxPixels: 256 } )
	_, err = loader.Capacity( "a.png", data )
	assert.NoError( t, err )

	// zero means default
	loader.SetLimits( Limits{} )
	_, err = loader.Capacity( "a.png", data )
	assert.NoError( t, err )
	assert.Error( t, Limits{}.Check( DefaultMaxDimension + 1, 1 ) )
	assert.NoError( t, Limits{}.Check( DefaultMaxDimension, 2048 ) )
}
