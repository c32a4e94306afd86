package main
import (
	"os"
	"io"
	"fmt"
	"strings"
	"path/filepath"

	"imgsteg/util"
	"imgsteg/config"
	"imgsteg/local"
	"imgsteg/cryptography"
	stegutil "imgsteg/stegano/util"
)

const (
	ImgStegFolder = ".imgsteg"
	FolderVariableName = "IMGSTEG_HOME"
	ConfigFilename = "config.yaml"
)

func main() {

	if len( os.Args ) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}

	// the only command which does not need configuration
	if os.Args[1] == "gensalt" {
		salt, err := util.GenSalt()
		if err != nil {
			fatal("Failed to generate salt:", err)
		}
		fmt.Println("[+] Generated salt:", salt)
		return
	}

	folder, err := imgstegFolder()
	if err != nil {
		fatal("Failed to prepare imgsteg directory:", err)
	}
	configFile := filepath.Join( folder, ConfigFilename )
	// first run, write the defaults so they can be edited
	if _, err := os.Stat( configFile ); err != nil {
		if err = config.SaveConfig( configFile, nil, config.DefaultConfig( folder ) ); err != nil {
			fatal("Failed to save default configuration:", err)
		}
	}
	conf, err := config.LoadConfig( configFile, nil )
	if err != nil {
		fatal("Failed to load configuration:", err)
	}
	logger := util.NewLogger( &conf.Logger )

	switch os.Args[1] {
	case "encode":
		if len( os.Args ) != 5 {
			help()
			os.Exit(-1)
		}
		if err = encode( conf, logger, os.Args[2], os.Args[3], os.Args[4] ); err != nil {
			logger.LogError( err )
			fatal("Failed to hide message:", err)
		}
	case "decode":
		if len( os.Args ) != 3 {
			help()
			os.Exit(-1)
		}
		if err = decode( conf, logger, os.Args[2] ); err != nil {
			logger.LogError( err )
			fatal("Failed to reveal message:", err)
		}
	case "capacity":
		if len( os.Args ) != 3 {
			help()
			os.Exit(-1)
		}
		if err = capacity( conf, os.Args[2] ); err != nil {
			fatal("Failed to read image:", err)
		}
	case "serve":
		if err = local.RunImgStegServer( conf, logger ); err != nil {
			fatal("Failed to run server:", err)
		}
	case "readlog":
		if err = readLog( conf ); err != nil {
			fatal("Failed to read log file:", err)
		}
	default:
		help()
	}
}

func imgstegFolder() (string, error) {
	folder := os.Getenv( FolderVariableName )
	if folder == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		folder = filepath.Join( home, ImgStegFolder )
	}
	if err := os.MkdirAll( folder, 0700 ); err != nil {
		return "", err
	}
	return folder, nil
}

func encode( conf *config.FullConfig, logger *util.Logger, input, output, message string ) error {
	loader, err := conf.StegConfig.Loader()
	if err != nil {
		return err
	}
	if message == "-" {
		data, err := io.ReadAll( os.Stdin )
		if err != nil {
			return err
		}
		message = strings.TrimSuffix( string(data), "\n" )
	}
	decoy, err := os.ReadFile( input )
	if err != nil {
		return err
	}
	encoded, err := loader.Hide( input, decoy, message )
	if err != nil {
		return err
	}
	if !strings.EqualFold( filepath.Ext( output ), ".png" ) {
		logger.LogWarning( "Output " + output + " is written as PNG regardless of its extension" )
	}
	if err = os.WriteFile( output, encoded, 0644 ); err != nil {
		return err
	}
	characters := len( loader.Codec().Units( message ) )
	logger.LogInfo( fmt.Sprintf("[encode] %d characters (%d graphemes) into %s",
		characters, stegutil.CountGraphemes( message ), output) )
	fmt.Printf("[+] Hidden %d characters in %s\n", characters, output)
	return nil
}

func decode( conf *config.FullConfig, logger *util.Logger, input string ) error {
	loader, err := conf.StegConfig.Loader()
	if err != nil {
		return err
	}
	decoy, err := os.ReadFile( input )
	if err != nil {
		return err
	}
	message, err := loader.Reveal( input, decoy )
	if err != nil {
		return err
	}
	logger.LogInfo( fmt.Sprintf("[decode] %d characters from %s", len( []rune(message) ), input) )
	fmt.Println( message )
	return nil
}

func capacity( conf *config.FullConfig, input string ) error {
	loader, err := conf.StegConfig.Loader()
	if err != nil {
		return err
	}
	decoy, err := os.ReadFile( input )
	if err != nil {
		return err
	}
	info, err := loader.Capacity( input, decoy )
	if err != nil {
		return err
	}
	fmt.Printf("%s image %dx%d: %d pixel-pairs, up to %d characters\n",
		info.Format, info.Width, info.Height, info.PixelPairs, info.MaxCharacters)
	return nil
}

// encrypted logs ask for the password, the salt comes from the configuration
func readLog( conf *config.FullConfig ) error {
	if conf.Logger.Filename == "" {
		fmt.Println( util.ErrNoLogFile.Error() )
		return nil
	}
	password := ""
	if conf.Logger.IsEncrypted {
		_, saltBytes, err := cryptography.SplitWithSalt( conf.Logger.Password )
		if err != nil {
			return err
		}
		pass, err := util.GetPasswd("Log password: ")
		if err != nil {
			return err
		}
		password = cryptography.JoinWithSalt( pass, saltBytes )
	}
	logs, err := util.ReadLog( conf.Logger.Filename, password )
	if err != nil {
		return err
	}
	fmt.Print( logs )
	return nil
}

func fatal( args ...any ) {
	fmt.Fprintln( os.Stderr, args... )
	os.Exit(-1)
}

func help() {
	line := `Usage: ./imgsteg <command> [arguments]

The following commands are supported:
	encode <image> <output.png> <message>	hide message in image ("-" reads stdin)
	decode <image>				print the message hidden in image
	capacity <image>			how many characters image can carry
	serve					run the local web server
	readlog					read log file
	gensalt					generate base64-encoded salt for log password

Configuration lives in ~/.imgsteg/config.yaml (or $IMGSTEG_HOME).
`

	fmt.Printf("%s", line)
}
