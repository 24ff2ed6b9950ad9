//go:build unit
// +build unit

package cryptoalg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCipherError(t *testing.T) {
	cause := errors.New("bad padding")

	decryptErr := NewCipherError(OperationDecrypt, AesCbcPkcs7256, "unable to finalize", cause)
	assert.True(t, IsDecryptionFailed(decryptErr))
	assert.False(t, IsEncryptionFailed(decryptErr))
	assert.ErrorIs(t, decryptErr, cause)
	assert.Equal(t, "Decrypt[AES/CBC/PKCS7/256] - unable to finalize: bad padding", decryptErr.Error())

	encryptErr := NewCipherError(OperationEncrypt, AesCbcPkcs7128, "unable to init", nil)
	assert.True(t, IsEncryptionFailed(encryptErr))
	assert.Equal(t, "Encrypt[AES/CBC/PKCS7/128] - unable to init", encryptErr.Error())
}

func TestFileOperationError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &FileOperationError{Op: "remove", Path: "/tmp/a.txt", TempPath: "/tmp/a.txt.encrypted", Err: cause}

	assert.True(t, IsFileOperationFailed(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/a.txt.encrypted")
}
