package decimal
import (
	"fmt"
	"strings"

	"imgsteg/stegano/util"
)

const (
	SurrogateMin = 0xD800
	SurrogateMax = 0xDFFF
	ReplacementChar = '\uFFFD'
)

// character count stored in the first two pixel-pairs
func ReadLength( grid ReadOnlyGrid ) (uint64, error) {
	if Capacity( grid.Bounds() ) < LengthPairs {
		return 0, ErrGridTooSmall
	}
	digits := []uint8{}
	for idx := 0; idx < LengthPairs; idx++ {
		digits = append( digits, readGroup( grid, idx )... )
	}
	return util.FromDigits( digits ), nil
}

/*
 * Decode reads back a message written by Encode. There is no marker telling
 * an image with a message from one without: an untouched image decodes to
 * whatever its last digits happen to spell, unless the declared length runs
 * past the end of the image.
 * The embedding unit does not matter here, every group is one scalar value.
 */
func (c *Codec) Decode( grid ReadOnlyGrid ) (string, error) {
	return Decode( grid )
}

func Decode( grid ReadOnlyGrid ) (string, error) {
	length, err := ReadLength( grid )
	if err != nil {
		return "", err
	}
	available := uint64( MaxCharacters( grid.Bounds() ) )
	if length > available {
		return "", fmt.Errorf("%w: %d characters declared, room for %d",
			ErrMalformedLength, length, available)
	}

	var sb strings.Builder
	sb.Grow( int(length) )
	for i := uint64(0); i < length; i++ {
		value := util.FromDigits( readGroup( grid, LengthPairs + int(i) ) )
		sb.WriteRune( toRune( value ) )
	}
	return sb.String(), nil
}

// surrogates can not stand alone in a string
func toRune( value uint64 ) rune {
	if value >= SurrogateMin && value <= SurrogateMax {
		return ReplacementChar
	}
	return rune(value)
}
