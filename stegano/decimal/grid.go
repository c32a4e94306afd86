package decimal
import (
	"image"
	"image/color"

	"imgsteg/stegano/util"
)

/*
 * Pixel grids the codec works on. *image.NRGBA satisfies both interfaces,
 * so loaders only have to produce one. Coordinates passed around inside the
 * package are relative to Bounds().Min.
 */
type ReadOnlyGrid interface {
	Bounds() image.Rectangle
	NRGBAAt( x, y int ) color.NRGBA
}

type Grid interface {
	ReadOnlyGrid
	SetNRGBA( x, y int, c color.NRGBA )
}

const (
	PixelsPerPair = 2
	LengthPairs = util.LengthWidth / util.GroupWidth
)

// pixel-pairs never cross a row, the last column of an odd-width image is
// never used.
func Capacity( bounds image.Rectangle ) int {
	return bounds.Dy() * ( bounds.Dx() / PixelsPerPair )
}

// characters left once the length prefix is stored
func MaxCharacters( bounds image.Rectangle ) int {
	c := Capacity( bounds ) - LengthPairs
	if c < 0 {
		return 0
	}
	return c
}

// absolute coordinates of the first pixel of the pair with given index
func pairOrigin( bounds image.Rectangle, idx int ) (int, int) {
	perRow := bounds.Dx() / PixelsPerPair
	x := ( idx % perRow ) * PixelsPerPair
	y := idx / perRow
	return bounds.Min.X + x, bounds.Min.Y + y
}

func readGroup( grid ReadOnlyGrid, idx int ) []uint8 {
	x, y := pairOrigin( grid.Bounds(), idx )
	first := grid.NRGBAAt( x, y )
	second := grid.NRGBAAt( x + 1, y )
	return []uint8{
		util.ExtractDigit( first.R ),
		util.ExtractDigit( first.G ),
		util.ExtractDigit( first.B ),
		util.ExtractDigit( second.R ),
		util.ExtractDigit( second.G ),
		util.ExtractDigit( second.B ),
	}
}

// alpha is carried over untouched
func writeGroup( grid Grid, idx int, group []uint8 ) {
	x, y := pairOrigin( grid.Bounds(), idx )
	first := grid.NRGBAAt( x, y )
	second := grid.NRGBAAt( x + 1, y )

	first.R = util.EmbedDigit( first.R, group[0] )
	first.G = util.EmbedDigit( first.G, group[1] )
	first.B = util.EmbedDigit( first.B, group[2] )

	second.R = util.EmbedDigit( second.R, group[3] )
	second.G = util.EmbedDigit( second.G, group[4] )
	second.B = util.EmbedDigit( second.B, group[5] )

	grid.SetNRGBA( x, y, first )
	grid.SetNRGBA( x + 1, y, second )
}
