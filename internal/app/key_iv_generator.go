package app

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/awnumar/memguard"
)

// KeyIVGenerator produces random keys and IVs sized for a configuration.
type KeyIVGenerator struct {
	config cryptoalg.Configuration
	source cryptoalg.SecureByteSource
}

// NewKeyIVGenerator creates a generator reading from source
func NewKeyIVGenerator(config cryptoalg.Configuration, source cryptoalg.SecureByteSource) (*KeyIVGenerator, error) {
	if source == nil {
		return nil, fmt.Errorf("secure byte source is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &KeyIVGenerator{config: config, source: source}, nil
}

// GenerateKey returns a key of the configured length
func (g *KeyIVGenerator) GenerateKey() (cryptoalg.Key, error) {
	material, err := g.generate(g.config.KeyLength.Bytes())
	if err != nil {
		return cryptoalg.Key{}, fmt.Errorf("failed to generate AES key: %w", err)
	}
	defer memguard.WipeBytes(material)
	return cryptoalg.NewKey(material), nil
}

// GenerateIV returns an IV of the length required by the configured mode
func (g *KeyIVGenerator) GenerateIV() (cryptoalg.IV, error) {
	data, err := g.generate(g.config.IVLength())
	if err != nil {
		return cryptoalg.IV{}, fmt.Errorf("failed to generate IV: %w", err)
	}
	defer memguard.WipeBytes(data)
	return cryptoalg.NewIV(data), nil
}

// GenerateKeyAndIV returns a fresh key and IV
func (g *KeyIVGenerator) GenerateKeyAndIV() (cryptoalg.KeyAndIV, error) {
	key, err := g.GenerateKey()
	if err != nil {
		return cryptoalg.KeyAndIV{}, err
	}
	iv, err := g.GenerateIV()
	if err != nil {
		key.Destroy()
		return cryptoalg.KeyAndIV{}, err
	}
	return cryptoalg.KeyAndIV{Key: key, IV: iv}, nil
}

func (g *KeyIVGenerator) generate(n int) ([]byte, error) {
	b, err := g.source.Generate(n)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		memguard.WipeBytes(b)
		return nil, fmt.Errorf("secure byte source returned %d bytes, expected %d", len(b), n)
	}
	return b, nil
}
