package decimal
import (
	"fmt"
	"strings"

	"imgsteg/stegano/util"
)

// Unit decides what one embedded digit group stands for.
type Unit uint8

const (
	// every Unicode scalar value gets its own group
	ScalarUnit = Unit(0)
	// one group per grapheme cluster, keeping only its first scalar value.
	// lossy for combining marks and multi-codepoint emoji.
	GraphemeUnit = Unit(1)
)

func (u Unit) String() string {
	switch u {
	case ScalarUnit:
		return "scalar"
	case GraphemeUnit:
		return "grapheme"
	}
	return fmt.Sprintf("unit(%d)", uint8(u))
}

func ParseUnit( s string ) (Unit, error) {
	switch strings.ToLower( strings.TrimSpace( s ) ) {
	case "", "scalar":
		return ScalarUnit, nil
	case "grapheme":
		return GraphemeUnit, nil
	}
	return ScalarUnit, fmt.Errorf("Unknown embedding unit %q", s)
}

type Codec struct {
	Unit		Unit
	NormalizeNFC	bool	// compose the message before splitting it
}

func NewCodec( unit Unit, normalize bool ) *Codec {
	return &Codec{
		Unit: unit,
		NormalizeNFC: normalize,
	}
}

// values which will be embedded for the message, one per digit group
func (c *Codec) Units( message string ) []rune {
	if c.NormalizeNFC {
		message = util.FixUnicode( message )
	}
	if c.Unit == GraphemeUnit {
		return util.SplitGraphemes( message )
	}
	return util.SplitScalars( message )
}

/*
 * Encode writes the length-prefixed message into grid in place.
 * Every check happens before the first write, a failed call leaves the grid
 * untouched.
 */
func (c *Codec) Encode( grid Grid, message string ) error {
	if message == "" {
		return ErrEmptyMessage
	}
	units := c.Units( message )
	if len(units) == 0 {
		return ErrEmptyMessage
	}
	if uint64(len(units)) > util.MaxLength {
		return fmt.Errorf("%w: %d characters", ErrLengthOverflow, len(units))
	}
	for i, u := range units {
		if u > util.MaxScalar {
			return fmt.Errorf("%w: character %d is U+%04X", ErrUnsupportedScalar, i, u)
		}
	}

	bounds := grid.Bounds()
	needed := len(units) + LengthPairs
	if available := Capacity( bounds ); available < needed {
		return fmt.Errorf("%w: need %d pixel-pairs, %dx%d image has %d",
			ErrCapacityExceeded, needed, bounds.Dx(), bounds.Dy(), available)
	}

	digits, err := util.EncodeToDigits( units )
	if err != nil {
		return err
	}
	for idx := 0; idx * util.GroupWidth < len(digits); idx++ {
		start := idx * util.GroupWidth
		writeGroup( grid, idx, digits[ start : start + util.GroupWidth ] )
	}
	return nil
}

func Encode( grid Grid, message string ) error {
	return NewCodec( ScalarUnit, false ).Encode( grid, message )
}
