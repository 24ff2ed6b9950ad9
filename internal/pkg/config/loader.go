package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into a settings struct
var ErrParsingConfig = errors.New("failed to parse configuration")

// Validator is implemented by every settings struct of this package
type Validator interface {
	Validate() error
}

// Load reads the given .env files (or ./.env when none are given and it exists),
// parses environment variables into cfg and validates the result.
// Variables already present in the environment take precedence over .env files.
//
// Example:
//
//	var cfg config.RestConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
func Load(cfg Validator, envFiles ...string) error {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return fmt.Errorf("failed to load env files: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return cfg.Validate()
}
