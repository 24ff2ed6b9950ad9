// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from the environment (optionally seeded from .env files) and
// validated before use. CLIConfig and RestConfig group the settings of each binary.
package config
