package cryptography
import (
	"fmt"
	"strings"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// chacha20poly1305 encryption+authentication, nonce is prepended
func Encrypt( data, key []byte ) ( []byte, error ) {

	if len(data) == 0 {
		return nil, nil
	}
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	nonce, err := GenRandom( NonceSize )
	if err != nil {
		return nil, err
	}
	ct := aead.Seal( nil, nonce, data, nil )
	return append( nonce, ct... ), nil
}

func Decrypt( data, key []byte ) ( []byte, error ) {

	if len(data) == 0 {
		return nil, nil
	}
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}
	if len(data) < NonceSize + TagSize {
		return nil, fmt.Errorf("Invalid length of data")
	}

	nonce := data[:NonceSize]
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	return aead.Open( nil, nonce, data[NonceSize:], nil )
}

// generate a random amount of bytes
func GenRandom( size uint ) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("[cryptography/common.go] GenRandom: Invalid size of random data")
	}
	data := make( []byte, size )
	if _, err := rand.Read( data ); err != nil {
		return nil, err
	}
	return data, nil
}

// calculate the hash of data
func Hash( data []byte ) string {
	if data == nil {
		return ""
	}
	hash := sha512.Sum512( data )
	return hex.EncodeToString( hash[:] )
}

// format: <base64-encoded-salt>:<password>
func SplitWithSalt( password string ) ([]byte, []byte, error) {
	salt, pass, found := strings.Cut( password, ":" )
	if !found {
		return nil, nil, fmt.Errorf("no salt supplied")
	}
	saltBytes, err := base64.StdEncoding.DecodeString( salt )
	if err != nil {
		return nil, nil, err
	}
	return []byte( pass ), saltBytes, nil
}

func JoinWithSalt( password, saltBytes []byte ) string {
	return base64.StdEncoding.EncodeToString( saltBytes ) + ":" + string( password )
}

// derive encryption key from password. used for local configuration and log storage
func DeriveKey( password, saltBytes []byte ) []byte {
	return argon2.IDKey( password, saltBytes, KdfTime, KdfMemory, KdfThreads, SymKeySize )
}
