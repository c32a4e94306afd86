package util
import (
	"os"
	"sync"
	"time"
	"errors"
	"io/fs"

	"imgsteg/cryptography"
)

/*
 * a custom logger: leveled, optionally colored, appends to a file which can
 * be kept encrypted.
 */
const (
	Error = 1
	Warning = 2
	Info = 4

	RedColor = "\033[31m"
	YellowColor = "\033[33m"
	GreenColor = "\033[32m"
	CyanColor = "\033[36m"
	BlueColor = "\033[34m"
	MagentaColor = "\033[35m"
	ResetColor = "\033[0m"
)

type LoggerInfo struct {
	Filename	string		`yaml:"filename"`	// empty means stderr
	Password	string		`yaml:"password"`	// <base64 salt>:<password>, for encrypted logs
	IsEncrypted	bool		`yaml:"is_encrypted"`
	IsColored	bool		`yaml:"is_colored"`
	SaveTime	bool		`yaml:"save_time"`
	Mode		uint8		`yaml:"mode"`
}

type Logger struct {
	li		*LoggerInfo
	key		[]byte		// derived once, argon2 is slow
	mtx		sync.Mutex
}

func NewLogger( li *LoggerInfo ) *Logger {
	return &Logger{
		li: li,
	}
}

func(l *Logger) colorize( line string, color string ) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func(l *Logger) prepareString( str string, clr string ) string {
	toWrite := l.colorize( str, clr ) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format( time.RFC3339 ) + " "
	}
	return toWrite
}

func(l *Logger) getKey() ([]byte, error) {
	if l.key != nil {
		return l.key, nil
	}
	pass, saltBytes, err := cryptography.SplitWithSalt( l.li.Password )
	if err != nil {
		return nil, err
	}
	l.key = cryptography.DeriveKey( pass, saltBytes )
	return l.key, nil
}

func(l *Logger) LogString( s string ) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if l.li.Filename == "" {
		os.Stderr.WriteString( s + "\n" )
		return
	}
	if l.li.IsEncrypted == false {
		// just append line
		f, err := os.OpenFile( l.li.Filename, os.O_APPEND | os.O_CREATE | os.O_WRONLY, 0600 )
		if err == nil {
			defer f.Close()
			f.WriteString( s + "\n" )
		}
		return
	}

	key, err := l.getKey()
	if err != nil {
		DebugPrintln( "Failed to derive log key:", err )
		return
	}
	currentLog := []byte{}
	data, err := os.ReadFile( l.li.Filename )
	if err == nil {
		currentLog, err = cryptography.Decrypt( data, key )
		if err != nil {
			// never overwrite a log we can not read
			DebugPrintln( "Failed to decrypt log file:", err )
			return
		}
	} else if !errors.Is( err, fs.ErrNotExist ) {
		return
	}
	newData := append( currentLog, []byte( s + "\n" )... )
	newData, err = cryptography.Encrypt( newData, key )
	if err == nil {
		os.WriteFile( l.li.Filename, newData, 0600 )
	}
}

func(l *Logger) LogError(err error) {
	if l.li.Mode & Error == Error {
		toWrite := l.prepareString("[ERROR]", RedColor) + err.Error()
		l.LogString( toWrite )
	}
}

func(l *Logger) LogWarning( warning string ) {
	if l.li.Mode & Warning == Warning {
		toWrite := l.prepareString("[WARNING]", YellowColor) + warning
		l.LogString( toWrite )
	}
}


func(l *Logger) LogInfo( info string ) {
	if l.li.Mode & Info == Info {
		toWrite := l.prepareString( "[INFO]", CyanColor ) + info
		l.LogString( toWrite )
	}
}
