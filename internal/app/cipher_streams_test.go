//go:build unit
// +build unit

package app

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransform(t *testing.T, op cryptoalg.Operation) cryptoalg.CipherTransform {
	t.Helper()
	transform, err := setupTransformFactory(t).NewTransform(cryptoalg.AesCbcPkcs7256)
	require.NoError(t, err)
	require.NoError(t, transform.Init(testIV(16).Bytes(), testKey(32).Bytes(), op))
	return transform
}

func TestCipherStreams_RoundTrip(t *testing.T) {
	plaintext := bytes.Repeat([]byte("stream me "), 100)

	var encrypted bytes.Buffer
	writer := newCipherWriter(&encrypted, newTestTransform(t, cryptoalg.OperationEncrypt), cryptoalg.OperationEncrypt, cryptoalg.AesCbcPkcs7256)
	require.NoError(t, copyChunks(writer, iotest.OneByteReader(bytes.NewReader(plaintext)), 7))
	require.NoError(t, writer.Flush())
	require.NoError(t, writer.Flush())
	assert.Equal(t, (len(plaintext)/16+1)*16, encrypted.Len())

	var decrypted bytes.Buffer
	reader := newCipherReader(bytes.NewReader(encrypted.Bytes()), newTestTransform(t, cryptoalg.OperationDecrypt), cryptoalg.OperationDecrypt, cryptoalg.AesCbcPkcs7256, 5)
	require.NoError(t, copyChunks(&decrypted, reader, 11))
	assert.Equal(t, plaintext, decrypted.Bytes())

	n, err := reader.Read(make([]byte, 4))
	assert.Zero(t, n)
	assert.Equal(t, io.EOF, err)
}

func TestCipherReader_FinalizeFailure(t *testing.T) {
	reader := newCipherReader(bytes.NewReader(make([]byte, 20)), newTestTransform(t, cryptoalg.OperationDecrypt), cryptoalg.OperationDecrypt, cryptoalg.AesCbcPkcs7256, 64)

	_, err := io.ReadAll(reader)
	assert.True(t, cryptoalg.IsDecryptionFailed(err))
}

func TestCipherReader_SourceFailure(t *testing.T) {
	cause := errors.New("disk on fire")
	reader := newCipherReader(iotest.ErrReader(cause), newTestTransform(t, cryptoalg.OperationDecrypt), cryptoalg.OperationDecrypt, cryptoalg.AesCbcPkcs7256, 64)

	_, err := reader.Read(make([]byte, 8))
	assert.ErrorIs(t, err, cause)
}

type emptyThenEOFReader struct {
	reads int
}

func (r *emptyThenEOFReader) Read(p []byte) (int, error) {
	r.reads++
	if r.reads < 3 {
		return 0, nil
	}
	return 0, io.EOF
}

func TestCopyChunks_EmptyReadsDoNotEndLoop(t *testing.T) {
	src := &emptyThenEOFReader{}
	var dst bytes.Buffer

	require.NoError(t, copyChunks(&dst, src, 4))
	assert.Equal(t, 3, src.reads)
	assert.Zero(t, dst.Len())
}
