package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/aes-vault/internal/app"
	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/aes-vault/internal/pkg/config"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
)

// AESCommandHandler encapsulates logic for handling AES file operations via CLI.
type AESCommandHandler struct {
	engines  *app.EngineFactory
	settings config.AesSettings
	logger   logger.Logger
}

// NewAESCommandHandler initializes and returns an AESCommandHandler instance backed by
// the platform AES transform and a secure random source.
func NewAESCommandHandler(cfg *config.CLIConfig, logger logger.Logger) (*AESCommandHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	transforms, err := cryptography.NewAESTransformFactory(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES transform factory: %w", err)
	}

	engines, err := app.NewEngineFactory(logger, cryptography.NewSecureByteSource(), transforms,
		app.WithFileChunkSize(cfg.Aes.ChunkSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine factory: %w", err)
	}

	return &AESCommandHandler{
		engines:  engines,
		settings: cfg.Aes,
		logger:   logger,
	}, nil
}

// GenerateAESKeyCmd generates an AES key and persists it in the selected directory
func (commandHandler *AESCommandHandler) GenerateAESKeyCmd(cmd *cobra.Command, _ []string) error {
	keyLength, err := cmd.Flags().GetInt("key-length")
	if err != nil {
		return fmt.Errorf("invalid key-length flag: %w", err)
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}

	configuration, err := cbcConfigurationFor(cryptoalg.KeyLength(keyLength))
	if err != nil {
		return err
	}
	engine, err := commandHandler.fileEngine(configuration)
	if err != nil {
		return err
	}

	key, err := engine.GenerateKey()
	if err != nil {
		return err
	}
	defer key.Destroy()

	keyFilePath, err := writeKeyFile(keyDir, key)
	if err != nil {
		return err
	}
	commandHandler.logger.Info("AES key saved to ", keyFilePath)
	return nil
}

// EncryptAESCmd encrypts a file in place. Without a symmetric key a new key is generated
// and saved next to the input file.
func (commandHandler *AESCommandHandler) EncryptAESCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	symmetricKeyPath, err := cmd.Flags().GetString("symmetric-key")
	if err != nil {
		return fmt.Errorf("invalid symmetric-key flag: %w", err)
	}
	embedIV, err := cmd.Flags().GetBool("embed-iv")
	if err != nil {
		return fmt.Errorf("invalid embed-iv flag: %w", err)
	}
	ivFilePath, err := cmd.Flags().GetString("iv-file")
	if err != nil {
		return fmt.Errorf("invalid iv-file flag: %w", err)
	}
	keepOriginal, err := cmd.Flags().GetBool("keep-original")
	if err != nil {
		return fmt.Errorf("invalid keep-original flag: %w", err)
	}

	var key *cryptoalg.Key
	if symmetricKeyPath != "" {
		k, err := loadKey(symmetricKeyPath)
		if err != nil {
			return err
		}
		key = &k
	}

	engine, err := commandHandler.engineFor(cmd, key)
	if err != nil {
		return err
	}

	if key == nil {
		generated, err := engine.GenerateKey()
		if err != nil {
			return err
		}
		keyFilePath, err := writeKeyFile(filepath.Dir(inputFilePath), generated)
		if err != nil {
			generated.Destroy()
			return err
		}
		commandHandler.logger.Info("Generated AES key saved to ", keyFilePath)
		key = &generated
	}
	defer key.Destroy()

	var ref *cryptoalg.EncryptedFileReference
	if embedIV {
		ref, err = engine.EncryptEmbeddingIVWithKey(*key, inputFilePath, !keepOriginal)
		if err != nil {
			return err
		}
	} else {
		ref, err = engine.EncryptWithKey(*key, inputFilePath, !keepOriginal)
		if err != nil {
			return err
		}
		if ivFilePath == "" {
			ivFilePath = inputFilePath + ".iv"
		}
		if err := os.WriteFile(ivFilePath, ref.KeyAndIV.IV.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write IV file: %w", err)
		}
		commandHandler.logger.Info("IV saved to ", ivFilePath)
	}

	commandHandler.logger.Info("Encrypted data saved to ", ref.Path)
	return nil
}

// DecryptAESCmd decrypts a file in place. With an IV file the separate IV is used,
// otherwise the IV is read from the head of the file.
func (commandHandler *AESCommandHandler) DecryptAESCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	symmetricKeyPath, err := cmd.Flags().GetString("symmetric-key")
	if err != nil {
		return fmt.Errorf("invalid symmetric-key flag: %w", err)
	}
	ivFilePath, err := cmd.Flags().GetString("iv-file")
	if err != nil {
		return fmt.Errorf("invalid iv-file flag: %w", err)
	}
	keepOriginal, err := cmd.Flags().GetBool("keep-original")
	if err != nil {
		return fmt.Errorf("invalid keep-original flag: %w", err)
	}

	key, err := loadKey(symmetricKeyPath)
	if err != nil {
		return err
	}
	defer key.Destroy()

	engine, err := commandHandler.engineFor(cmd, &key)
	if err != nil {
		return err
	}

	var ref *cryptoalg.DecryptedFileReference
	if ivFilePath != "" {
		ivBytes, err := readSecretFile(ivFilePath)
		if err != nil {
			return err
		}
		iv := cryptoalg.NewIV(ivBytes)
		memguard.WipeBytes(ivBytes)
		defer iv.Destroy()

		ref, err = engine.Decrypt(&cryptoalg.EncryptedFileReference{
			KeyAndIV: cryptoalg.KeyAndIV{Key: key, IV: iv},
			Path:     inputFilePath,
		}, !keepOriginal)
		if err != nil {
			return err
		}
	} else {
		ref, err = engine.DecryptWithIVFromFile(key, inputFilePath, !keepOriginal)
		if err != nil {
			return err
		}
	}

	commandHandler.logger.Info("Decrypted data saved to ", ref.Path)
	return nil
}

// engineFor resolves the configuration from the --configuration flag, the key length
// or the configured default, in that order.
func (commandHandler *AESCommandHandler) engineFor(cmd *cobra.Command, key *cryptoalg.Key) (*app.AesFileEngine, error) {
	name, err := cmd.Flags().GetString("configuration")
	if err != nil {
		return nil, fmt.Errorf("invalid configuration flag: %w", err)
	}

	var configuration cryptoalg.Configuration
	switch {
	case name != "":
		settings := commandHandler.settings
		settings.Configuration = name
		configuration, err = settings.ResolveConfiguration()
	case key != nil:
		keyLength, ok := cryptoalg.KeyLengthFromBytes(key.Len())
		if !ok {
			return nil, fmt.Errorf("%w: key file holds %d bytes, expected 16, 24 or 32", cryptoalg.ErrInvalidKey, key.Len())
		}
		configuration, err = cbcConfigurationFor(keyLength)
	default:
		configuration, err = commandHandler.settings.ResolveConfiguration()
	}
	if err != nil {
		return nil, err
	}
	return commandHandler.fileEngine(configuration)
}

func (commandHandler *AESCommandHandler) fileEngine(configuration cryptoalg.Configuration) (*app.AesFileEngine, error) {
	if commandHandler.settings.SecureIV {
		return commandHandler.engines.NewFileEngine(configuration)
	}
	return commandHandler.engines.NewNonSecureFileEngine(configuration)
}

func loadKey(path string) (cryptoalg.Key, error) {
	material, err := readSecretFile(path)
	if err != nil {
		return cryptoalg.Key{}, err
	}
	defer memguard.WipeBytes(material)
	return cryptoalg.NewKey(material), nil
}

// InitAESCommands registers AES-related commands
func InitAESCommands(rootCmd *cobra.Command, cfg *config.CLIConfig, logger logger.Logger) error {
	handler, err := NewAESCommandHandler(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AES command handler: %w", err)
	}

	var generateAESKeyCmd = &cobra.Command{
		Use:   "generate-aes-key",
		Short: "Generate an AES key",
		RunE:  handler.GenerateAESKeyCmd,
	}
	generateAESKeyCmd.Flags().IntP("key-length", "", 256, "AES key length in bits (128, 192 or 256)")
	generateAESKeyCmd.Flags().StringP("key-dir", "", ".", "Directory to store the key")
	rootCmd.AddCommand(generateAESKeyCmd)

	var encryptAESFileCmd = &cobra.Command{
		Use:   "encrypt-aes",
		Short: "Encrypt a file using AES",
		RunE:  handler.EncryptAESCmd,
	}
	encryptAESFileCmd.Flags().StringP("input-file", "", "", "Path to the file that needs to be encrypted")
	encryptAESFileCmd.Flags().StringP("symmetric-key", "", "", "Path to the symmetric key, a new key is generated when empty")
	encryptAESFileCmd.Flags().StringP("configuration", "", "", "AES configuration name, e.g. AES_CBC_PKCS7_256")
	encryptAESFileCmd.Flags().BoolP("embed-iv", "", false, "Store the IV at the head of the encrypted file")
	encryptAESFileCmd.Flags().StringP("iv-file", "", "", "Path to write the IV to (default <input-file>.iv)")
	encryptAESFileCmd.Flags().BoolP("keep-original", "", false, "Keep the original file and write the result next to it")
	_ = encryptAESFileCmd.MarkFlagRequired("input-file")
	rootCmd.AddCommand(encryptAESFileCmd)

	var decryptAESFileCmd = &cobra.Command{
		Use:   "decrypt-aes",
		Short: "Decrypt a file using AES",
		RunE:  handler.DecryptAESCmd,
	}
	decryptAESFileCmd.Flags().StringP("input-file", "", "", "Path to the encrypted file")
	decryptAESFileCmd.Flags().StringP("symmetric-key", "", "", "Path to the symmetric key")
	decryptAESFileCmd.Flags().StringP("configuration", "", "", "AES configuration name, e.g. AES_CBC_PKCS7_256")
	decryptAESFileCmd.Flags().StringP("iv-file", "", "", "Path to the IV, read from the head of the file when empty")
	decryptAESFileCmd.Flags().BoolP("keep-original", "", false, "Keep the encrypted file and write the result next to it")
	_ = decryptAESFileCmd.MarkFlagRequired("input-file")
	_ = decryptAESFileCmd.MarkFlagRequired("symmetric-key")
	rootCmd.AddCommand(decryptAESFileCmd)

	return nil
}
