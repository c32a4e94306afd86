package config

import (
	"os"
	"fmt"
	"path/filepath"
	"gopkg.in/yaml.v3"

	"imgsteg/cryptography"
	"imgsteg/stegano/decimal"
	"imgsteg/stegano/img"
	"imgsteg/util"
)

const (
	DefaultAddress = "127.0.0.1:8080"
	DefaultMaxUploadSize = 32 << 20
	DefaultOutputFilename = "modified_image.png"
)

/*
 * Server configuration - configuration of local API server.
 * Pages map route patterns to files served as they are, the API routes
 * are registered by the server itself.
 */
type ServerConfiguration struct {
	Address		string			`yaml:"address"`
	NotFoundPage	string			`yaml:"not_found_page"`
	Pages		map[string]string	`yaml:"pages"`
	MaxUploadSize	int64			`yaml:"max_upload_size"`	// bytes per request
	Compress	bool			`yaml:"compress"`		// gzip responses
}

/*
 * Configuration for steganography. The allow-list is handed to the image
 * loader when it is built, nothing reads it globally.
 */
type SteganoConfig struct {
	AllowedFileTypes	[]string	`yaml:"allowed_file_types"`
	Unit			string		`yaml:"unit"`		// scalar or grapheme
	NormalizeNFC		bool		`yaml:"normalize_nfc"`
	OutputFilename		string		`yaml:"output_filename"`
	MaxImageDimension	int		`yaml:"max_image_dimension"`	// pixels per side
	MaxImagePixels		int64		`yaml:"max_image_pixels"`	// width * height
}

type FullConfig struct {
	ServerConfig	ServerConfiguration	`yaml:"local_server_config"`
	StegConfig	SteganoConfig		`yaml:"steganography_config"`
	Logger		util.LoggerInfo		`yaml:"logger_config"`
}

func DefaultConfig( folder string ) *FullConfig {
	return &FullConfig{
		ServerConfig: ServerConfiguration{
			Address: DefaultAddress,
			NotFoundPage: "www/404.html",
			Pages: map[string]string{
				"GET /{$}": "www/index.html",
			},
			MaxUploadSize: DefaultMaxUploadSize,
			Compress: true,
		},
		StegConfig: SteganoConfig{
			AllowedFileTypes: append( []string{}, img.DefaultAllowedFileTypes... ),
			Unit: decimal.ScalarUnit.String(),
			NormalizeNFC: false,
			OutputFilename: DefaultOutputFilename,
			MaxImageDimension: img.DefaultMaxDimension,
			MaxImagePixels: img.DefaultMaxPixels,
		},
		Logger: util.LoggerInfo{
			Filename: filepath.Join( folder, "log.log" ),
			IsColored: true,
			SaveTime: true,
			Mode: util.Error | util.Warning,
		},
	}
}

// fill the gaps left in a hand-edited file
func(c *FullConfig) Validate() error {
	if c.ServerConfig.Address == "" {
		c.ServerConfig.Address = DefaultAddress
	}
	if c.ServerConfig.MaxUploadSize <= 0 {
		c.ServerConfig.MaxUploadSize = DefaultMaxUploadSize
	}
	if c.StegConfig.OutputFilename == "" {
		c.StegConfig.OutputFilename = DefaultOutputFilename
	}
	if c.StegConfig.MaxImageDimension <= 0 {
		c.StegConfig.MaxImageDimension = img.DefaultMaxDimension
	}
	if c.StegConfig.MaxImagePixels <= 0 {
		c.StegConfig.MaxImagePixels = img.DefaultMaxPixels
	}
	if len(c.StegConfig.AllowedFileTypes) == 0 {
		return fmt.Errorf("No allowed file types configured")
	}
	if _, err := decimal.ParseUnit( c.StegConfig.Unit ); err != nil {
		return err
	}
	if c.Logger.IsEncrypted {
		if _, _, err := cryptography.SplitWithSalt( c.Logger.Password ); err != nil {
			return fmt.Errorf("Encrypted log needs a <salt>:<password> password: %s", err.Error())
		}
	}
	return nil
}

func(s *SteganoConfig) Codec() (*decimal.Codec, error) {
	unit, err := decimal.ParseUnit( s.Unit )
	if err != nil {
		return nil, err
	}
	return decimal.NewCodec( unit, s.NormalizeNFC ), nil
}

func(s *SteganoConfig) Loader() (*img.Loader, error) {
	codec, err := s.Codec()
	if err != nil {
		return nil, err
	}
	loader := img.NewLoader( s.AllowedFileTypes, codec )
	loader.SetLimits( img.Limits{
		MaxDimension: s.MaxImageDimension,
		MaxPixels: s.MaxImagePixels,
	})
	return loader, nil
}

/*
 * Functions for loading and saving configuration in YAML format.
 */
func LoadConfig(filename string, key []byte) (*FullConfig, error) {
	data, err := LoadEncrypted(filename, key)
	if err != nil {
		return nil, err
	}

	var conf FullConfig
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func SaveConfig(filename string, key []byte, c *FullConfig) error {
	data, err := yaml.Marshal( c )
	if err != nil {
		return err
	}
	return SaveEncrypted(filename, key, data)
}

/*
 * Functions for saving and loading encrypted files, a nil key keeps them
 * in plaintext.
 */
func LoadEncrypted(filename string, key []byte) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if len(key) == cryptography.SymKeySize {
		return cryptography.Decrypt(data, key)
	}
	// return unencrypted data
	return data, nil
}

func SaveEncrypted(filename string, key, data []byte) error {

	var err error
	if len(key) == cryptography.SymKeySize {
		data, err = cryptography.Encrypt(data, key)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return err
	}
	return nil
}
