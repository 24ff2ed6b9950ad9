package cryptography

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"
)

// aesTransformFactory struct that implements the CipherTransformFactory interface
type aesTransformFactory struct {
	logger logger.Logger
}

// NewAESTransformFactory creates and returns a factory of AES cipher transforms backed by crypto/aes
func NewAESTransformFactory(logger logger.Logger) (cryptoalg.CipherTransformFactory, error) {
	return &aesTransformFactory{
		logger: logger,
	}, nil
}

// NewTransform returns a fresh transform for config. Only CBC is available.
func (f *aesTransformFactory) NewTransform(config cryptoalg.Configuration) (cryptoalg.CipherTransform, error) {
	if err := config.Validate(); err != nil {
		f.logger.Warn(fmt.Sprintf("Rejected cipher transform for %s: %v", config, err))
		return nil, err
	}

	switch config.Mode {
	case cryptoalg.BlockModeCBC:
		return newCBCTransform(config.Padding), nil
	default:
		return nil, fmt.Errorf("%w: %s block mode", cryptoalg.ErrNotImplemented, config.Mode)
	}
}
