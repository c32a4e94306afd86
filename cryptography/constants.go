package cryptography
import (
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	SymKeySize = chacha20poly1305.KeySize
	NonceSize = chacha20poly1305.NonceSize
	TagSize = chacha20poly1305.Overhead
	SaltSize = 16

	// argon2id parameters, the draft RFC recommends time=3 and 32 MB of memory
	// the lane count is part of the key, it must not follow the host
	KdfTime = 3
	KdfMemory = 32 * 1024
	KdfThreads = 4
)
