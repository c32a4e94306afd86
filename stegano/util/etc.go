package util
import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

func FixUnicode( in string ) string {
	return norm.NFC.String( in )
}

// every scalar value of the string, in order.
func SplitScalars( s string ) []rune {
	return []rune( s )
}

/*
 * one value per user-perceived character: only the first scalar value of
 * every grapheme cluster survives. "e" + U+0301 becomes "e", a flag emoji
 * keeps its first regional indicator only.
 */
func SplitGraphemes( s string ) []rune {
	result := []rune{}
	g := uniseg.NewGraphemes( s )
	for g.Next() {
		runes := g.Runes()
		if len(runes) > 0 {
			result = append( result, runes[0] )
		}
	}
	return result
}

func CountGraphemes( s string ) int {
	return uniseg.GraphemeClusterCount( s )
}
