package util
import (
	"os"
	"log"
)

// set IMGSTEG_DEBUG to any value to see debug output
var DebugMode = os.Getenv( "IMGSTEG_DEBUG" ) != ""

func DebugPrintln( args ...any ) {
	if DebugMode == true {
		log.Println( args... )
	}
}

func DebugPrintf( format string, args ...any ) {
	if DebugMode == true {
		log.Printf( format, args... )
	}
}
