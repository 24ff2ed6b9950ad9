//go:build unit
// +build unit

package app

import (
	"bytes"
	"testing"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/config"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"
	"github.com/MGTheTrain/aes-vault/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineFactory_ReservedModes(t *testing.T) {
	factory := setupEngineFactory(t)

	for _, cfg := range []cryptoalg.Configuration{cryptoalg.AesCtr256, cryptoalg.AesGcm128} {
		_, err := factory.NewBufferEngine(cfg)
		assert.True(t, cryptoalg.IsNotImplemented(err))
		_, err = factory.NewNonSecureBufferEngine(cfg)
		assert.True(t, cryptoalg.IsNotImplemented(err))
		_, err = factory.NewFileEngine(cfg)
		assert.True(t, cryptoalg.IsNotImplemented(err))
		_, err = factory.NewNonSecureFileEngine(cfg)
		assert.True(t, cryptoalg.IsNotImplemented(err))
	}
}

func TestEngineFactory_NonSecureFileEngineIsAFileEngine(t *testing.T) {
	engine, err := setupEngineFactory(t).NewNonSecureFileEngine(cryptoalg.AesCbcPkcs7256)
	require.NoError(t, err)

	path := testutil.CreateTempTestFile(t, "legacy.txt", []byte("legacy"))
	keyAndIV := cryptoalg.KeyAndIV{Key: testKey(32), IV: cryptoalg.NewIV(make([]byte, 16))}

	ref, err := engine.EncryptWithKeyAndIV(keyAndIV, path, false)
	require.NoError(t, err)

	decrypted, err := engine.Decrypt(ref, false)
	require.NoError(t, err)
	assert.Equal(t, []byte("legacy"), testutil.ReadTestFile(t, decrypted.Path))
}

func TestEngineFactory_NonSecureEngineWarns(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriterLogger(config.LogLevelInfo, &buf)

	transforms := setupTransformFactory(t)
	source := new(MockSecureByteSource)
	factory, err := NewEngineFactory(log, source, transforms)
	require.NoError(t, err)

	engine, err := factory.NewNonSecureBufferEngine(cryptoalg.AesCbcPkcs7256)
	require.NoError(t, err)

	_, err = engine.EncryptWithKeyAndIV(cryptoalg.KeyAndIV{Key: testKey(32), IV: cryptoalg.NewIV(make([]byte, 16))}, []byte("x"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "all-zero IV")
	source.AssertNotCalled(t, "Generate", 16)
}

func TestNewEngineFactory_RequiresDependencies(t *testing.T) {
	_, err := NewEngineFactory(nil, nil, nil)
	assert.Error(t, err)
}
