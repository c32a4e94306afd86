package util
import (
	"os"
	"fmt"
	"golang.org/x/term"
)

// just a wrapper for term, the prompt goes to stderr so stdout stays clean
func GetPasswd( prompt string ) ([]byte, error) {
	fmt.Fprint( os.Stderr, prompt )
	bytepw, err := term.ReadPassword( int( os.Stdin.Fd() ) )
	fmt.Fprintln( os.Stderr )
	return bytepw, err
}
