// Package main is the entry point for the aes-vault-cli application.
// It loads the configuration from the environment, registers the AES sub-commands
// and executes the command-line interface.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	commands "github.com/MGTheTrain/aes-vault/cmd/aes-vault-cli/internal/commands"
	"github.com/MGTheTrain/aes-vault/internal/pkg/config"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "aes-vault-cli",
		Short: "AES file encryption CLI tool",
		Long: `aes-vault-cli encrypts and decrypts files with AES-CBC and PKCS#7 padding.
Files are streamed in chunks, so their size is not bounded by memory.

The following environment variables (or a .env file) are honoured:
- AES_VAULT_AES_CONFIGURATION (default AES_CBC_PKCS7_256)
- AES_VAULT_AES_SECURE_IV (default true)
- AES_VAULT_AES_CHUNK_SIZE (default 1048576)
- AES_VAULT_LOG_LEVEL, AES_VAULT_LOG_TYPE, AES_VAULT_LOG_FILE_PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var cfg config.CLIConfig
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if closer, ok := appLogger.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	// Initialize all command groups BEFORE executing
	if err := commands.InitAESCommands(rootCmd, &cfg, appLogger); err != nil {
		return fmt.Errorf("failed to initialize AES commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
