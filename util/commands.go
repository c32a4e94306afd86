package util
import (
	"os"
	"fmt"
	"errors"
	"strconv"
	"unicode/utf8"
	"encoding/base64"
	"imgsteg/cryptography"
)

var ErrNoLogFile = errors.New("logging to stderr, no log file to read")

/*
 * user-related commands which do not need the codec.
 */
func ReadLog( log string, password string ) (string, error) {
	if log == "" {
		return "", ErrNoLogFile
	}
	data, err := os.ReadFile( log )
	if err != nil {
		return "", fmt.Errorf("Failed to read file: %s", err.Error())
	}
	if password == "" {
		return string(data), nil
	}

	pass, saltBytes, err := cryptography.SplitWithSalt( password )
	if err != nil {
		return "", fmt.Errorf("Invalid log password: %s", err.Error())
	}
	key := cryptography.DeriveKey( pass, saltBytes )
	logs, err := cryptography.Decrypt( data, key )
	if err != nil {
		// logs are unencrypted?
		strLogs := string(data)
		if !utf8.Valid( data ) {
			return "", fmt.Errorf("Failed to decrypt logs: invalid password.")
		}
		for _, run := range strLogs {
			if strconv.IsPrint( run ) == false && run != '\n' && run != '\033' {
				return "", fmt.Errorf("Failed to decrypt logs: invalid password.")
			}
		}
		return strLogs, nil
	}
	return string(logs), nil
}

func GenSalt() (string, error) {
	saltBytes, err := cryptography.GenRandom( cryptography.SaltSize )
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString( saltBytes ), nil
}
