package app

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
)

// BufferCipher runs a cipher transform over a buffer held entirely in memory.
type BufferCipher struct {
	config     cryptoalg.Configuration
	transforms cryptoalg.CipherTransformFactory
}

// NewBufferCipher creates a BufferCipher for config
func NewBufferCipher(config cryptoalg.Configuration, transforms cryptoalg.CipherTransformFactory) (*BufferCipher, error) {
	if transforms == nil {
		return nil, fmt.Errorf("cipher transform factory is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &BufferCipher{config: config, transforms: transforms}, nil
}

// Run initializes a fresh transform, feeds data in a single Update and appends the Finalize output.
// Transform failures are returned as *cryptoalg.CipherError.
func (b *BufferCipher) Run(data, iv, key []byte, op cryptoalg.Operation) ([]byte, error) {
	transform, err := b.transforms.NewTransform(b.config)
	if err != nil {
		return nil, err
	}

	if err := transform.Init(iv, key, op); err != nil {
		return nil, cryptoalg.NewCipherError(op, b.config, "unable to initialize cipher", err)
	}

	out := make([]byte, 0, transform.OutputSize(len(data)))

	part, err := transform.Update(data)
	if err != nil {
		return nil, cryptoalg.NewCipherError(op, b.config, "unable to process data", err)
	}
	out = append(out, part...)

	tail, err := transform.Finalize()
	if err != nil {
		return nil, cryptoalg.NewCipherError(op, b.config, "unable to finalize cipher", err)
	}
	return append(out, tail...), nil
}
