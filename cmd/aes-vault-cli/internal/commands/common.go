package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"

	"github.com/awnumar/memguard"
	"github.com/google/uuid"
)

const keyFileSuffix = "-symmetric-key.bin"

// readSecretFile reads a key or IV file
func readSecretFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeKeyFile persists key material as <uuid>-symmetric-key.bin in dir
func writeKeyFile(dir string, key cryptoalg.Key) (string, error) {
	material := key.Bytes()
	defer memguard.WipeBytes(material)

	keyFilePath := filepath.Join(dir, uuid.New().String()+keyFileSuffix)
	if err := os.WriteFile(keyFilePath, material, 0600); err != nil {
		return "", fmt.Errorf("failed to write key file: %w", err)
	}
	return keyFilePath, nil
}

// cbcConfigurationFor returns the CBC configuration matching the key length
func cbcConfigurationFor(keyLength cryptoalg.KeyLength) (cryptoalg.Configuration, error) {
	for _, c := range cryptoalg.Configurations() {
		if c.Mode == cryptoalg.BlockModeCBC && c.KeyLength == keyLength {
			return c, nil
		}
	}
	return cryptoalg.Configuration{}, fmt.Errorf("%w: no CBC configuration for %d bit keys", cryptoalg.ErrInvalidKey, int(keyLength))
}
