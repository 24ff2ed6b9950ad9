//go:build unit
// +build unit

package app

import (
	"bytes"
	"testing"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/aes-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func testKey(length int) cryptoalg.Key {
	return cryptoalg.NewKey(bytes.Repeat([]byte{0x5A}, length))
}

func testIV(length int) cryptoalg.IV {
	return cryptoalg.NewIV(bytes.Repeat([]byte{0xC3}, length))
}

func setupEngineFactory(t *testing.T, opts ...EngineFactoryOption) *EngineFactory {
	t.Helper()
	logger := testutil.SetupTestLogger(t)

	transforms, err := cryptography.NewAESTransformFactory(logger)
	require.NoError(t, err)

	factory, err := NewEngineFactory(logger, cryptography.NewSecureByteSource(), transforms, opts...)
	require.NoError(t, err)
	return factory
}

func setupTransformFactory(t *testing.T) cryptoalg.CipherTransformFactory {
	t.Helper()
	transforms, err := cryptography.NewAESTransformFactory(testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return transforms
}
