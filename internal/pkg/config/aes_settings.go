package config

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/validators"
)

// Chunk size bounds of the file copy loop
const (
	MinChunkSize = 4 * 1024
	MaxChunkSize = 64 * 1024 * 1024
)

// AesSettings selects the AES configuration and the file streaming behaviour
type AesSettings struct {
	Configuration string `env:"CONFIGURATION" envDefault:"AES_CBC_PKCS7_256" validate:"required,aesconfiguration"`
	SecureIV      bool   `env:"SECURE_IV" envDefault:"true"`
	ChunkSize     int    `env:"CHUNK_SIZE" envDefault:"1048576" validate:"min=4096,max=67108864"`
}

// Validate checks that all fields in AesSettings are valid
func (s *AesSettings) Validate() error {
	if err := validators.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for AesSettings: %w", err)
	}
	return nil
}

// ResolveConfiguration returns the AES configuration named by the settings
func (s *AesSettings) ResolveConfiguration() (cryptoalg.Configuration, error) {
	config, err := cryptoalg.ConfigurationByName(s.Configuration)
	if err != nil {
		return cryptoalg.Configuration{}, err
	}
	if err := config.Validate(); err != nil {
		return cryptoalg.Configuration{}, err
	}
	return config, nil
}
