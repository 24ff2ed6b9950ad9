package app

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"
)

// EngineFactoryOption configures an EngineFactory
type EngineFactoryOption func(*EngineFactory)

// WithFileChunkSize sets the chunk size of file engines built by the factory.
func WithFileChunkSize(size int) EngineFactoryOption {
	return func(f *EngineFactory) {
		f.chunkSize = size
	}
}

// EngineFactory builds buffer and file engines sharing one logger, random source and transform backend.
type EngineFactory struct {
	logger     logger.Logger
	random     cryptoalg.SecureByteSource
	transforms cryptoalg.CipherTransformFactory
	chunkSize  int
}

// NewEngineFactory creates a new EngineFactory instance
func NewEngineFactory(logger logger.Logger, random cryptoalg.SecureByteSource, transforms cryptoalg.CipherTransformFactory, opts ...EngineFactoryOption) (*EngineFactory, error) {
	if logger == nil || random == nil || transforms == nil {
		return nil, fmt.Errorf("logger, secure byte source and cipher transform factory are required")
	}

	f := &EngineFactory{
		logger:     logger,
		random:     random,
		transforms: transforms,
		chunkSize:  cryptoalg.DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// NewBufferEngine returns a buffer engine that rejects all-zero IVs
func (f *EngineFactory) NewBufferEngine(config cryptoalg.Configuration) (*AesBufferEngine, error) {
	return f.newBufferEngine(config, RejectZeroIV)
}

// NewNonSecureBufferEngine returns a buffer engine that accepts all-zero IVs with a warning
func (f *EngineFactory) NewNonSecureBufferEngine(config cryptoalg.Configuration) (*AesBufferEngine, error) {
	return f.newBufferEngine(config, WarnAndAllowZeroIV)
}

// NewFileEngine returns a file engine that rejects all-zero IVs
func (f *EngineFactory) NewFileEngine(config cryptoalg.Configuration) (*AesFileEngine, error) {
	return f.newFileEngine(config, RejectZeroIV)
}

// NewNonSecureFileEngine returns a file engine that accepts all-zero IVs with a warning
func (f *EngineFactory) NewNonSecureFileEngine(config cryptoalg.Configuration) (*AesFileEngine, error) {
	return f.newFileEngine(config, WarnAndAllowZeroIV)
}

func (f *EngineFactory) newBufferEngine(config cryptoalg.Configuration, policy IVPolicy) (*AesBufferEngine, error) {
	checker, generator, err := f.newCheckerAndGenerator(config, policy)
	if err != nil {
		return nil, err
	}
	cipher, err := NewBufferCipher(config, f.transforms)
	if err != nil {
		return nil, err
	}
	return NewAesBufferEngine(checker, generator, cipher, f.logger), nil
}

func (f *EngineFactory) newFileEngine(config cryptoalg.Configuration, policy IVPolicy) (*AesFileEngine, error) {
	checker, generator, err := f.newCheckerAndGenerator(config, policy)
	if err != nil {
		return nil, err
	}
	files, err := NewFileCipher(config, f.transforms, f.logger, WithChunkSize(f.chunkSize), WithIVChecker(checker))
	if err != nil {
		return nil, err
	}
	return NewAesFileEngine(checker, generator, files, f.logger), nil
}

func (f *EngineFactory) newCheckerAndGenerator(config cryptoalg.Configuration, policy IVPolicy) (*SanityChecker, *KeyIVGenerator, error) {
	checker, err := NewSanityChecker(config, policy, WithInsecureIVHook(f.warnInsecureIV))
	if err != nil {
		f.logger.Error(fmt.Sprintf("Unable to create engine for %s: %v", config, err))
		return nil, nil, err
	}
	generator, err := NewKeyIVGenerator(config, f.random)
	if err != nil {
		return nil, nil, err
	}
	return checker, generator, nil
}

func (f *EngineFactory) warnInsecureIV(config cryptoalg.Configuration) {
	f.logger.Warn(fmt.Sprintf("Using an all-zero IV with %s is not secure", config))
}
