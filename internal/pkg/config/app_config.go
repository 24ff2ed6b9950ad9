package config

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/pkg/validators"
)

// CLIConfig is the configuration of the command line client
type CLIConfig struct {
	Logger LoggerSettings `envPrefix:"AES_VAULT_LOG_"`
	Aes    AesSettings    `envPrefix:"AES_VAULT_AES_"`
}

// Validate checks the nested settings
func (c *CLIConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.Aes.Validate()
}

// RestConfig is the configuration of the REST server
type RestConfig struct {
	Port           string         `env:"AES_VAULT_PORT" envDefault:"8080"`
	AllowedOrigins []string       `env:"AES_VAULT_CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	Logger         LoggerSettings `envPrefix:"AES_VAULT_LOG_"`
	Aes            AesSettings    `envPrefix:"AES_VAULT_AES_"`
}

// Validate checks the port and the nested settings
func (c *RestConfig) Validate() error {
	if err := validators.New().Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.Aes.Validate()
}
