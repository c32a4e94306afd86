package util
import (
	"fmt"
)

const (
	GroupWidth = 6		// digits per pixel-pair (3 channels * 2 pixels)
	LengthWidth = 12	// digits of the length prefix (2 pixel-pairs)
	DigitsPerPixel = 3

	MaxScalar = 999999
	MaxLength = 999999999999
)

/*
 * transform values from/to decimal digits stored in colour channels.
 * only the last decimal digit of a channel carries information.
 */
func EmbedDigit( channel uint8, digit uint8 ) uint8 {
	base := int(channel) - int(channel % 10)
	candidate := base + int(digit % 10)
	if candidate > 255 {
		// 250..255 can only take digits 0..5, so drop one decade
		candidate -= 10
	}
	return uint8(candidate)
}

func ExtractDigit( channel uint8 ) uint8 {
	return channel % 10
}

// right-aligned, zero-padded
func ToDigits( value uint64, width int ) ([]uint8, error) {
	if width <= 0 {
		return nil, fmt.Errorf("Invalid digit group width %d", width)
	}
	result := make( []uint8, width )
	for i := width - 1; i >= 0; i-- {
		result[i] = uint8(value % 10)
		value /= 10
	}
	if value != 0 {
		return nil, fmt.Errorf("Value does not fit into %d digits", width)
	}
	return result, nil
}

func FromDigits( digits []uint8 ) uint64 {
	result := uint64(0)
	for _, d := range digits {
		result *= 10
		result += uint64(d)
	}
	return result
}

// length prefix followed by one group per value
func EncodeToDigits( values []rune ) ([]uint8, error) {
	if uint64(len(values)) > MaxLength {
		return nil, fmt.Errorf("Too many characters to encode: %d", len(values))
	}
	result, err := ToDigits( uint64(len(values)), LengthWidth )
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if v < 0 || v > MaxScalar {
			return nil, fmt.Errorf("Character %d (U+%04X) needs more than %d digits", i, v, GroupWidth)
		}
		group, err := ToDigits( uint64(v), GroupWidth )
		if err != nil {
			return nil, err
		}
		result = append( result, group... )
	}
	return result, nil
}
