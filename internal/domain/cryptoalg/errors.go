package cryptoalg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when a key has an unsupported length or only zero bytes.
	ErrInvalidKey = errors.New("aes: invalid key")

	// ErrInvalidIV is returned when an IV has the wrong length, or only zero bytes under the secure policy.
	ErrInvalidIV = errors.New("aes: invalid IV")

	// ErrNotImplemented is returned when a reserved block mode (CTR, GCM) is requested.
	ErrNotImplemented = errors.New("aes: not implemented")

	// ErrNotInitialized is the panic value of a cipher transform used before Init.
	ErrNotInitialized = errors.New("aes: cipher transform not initialized")

	// ErrFileNotFound is returned when the source of a file operation does not exist.
	ErrFileNotFound = errors.New("aes: file not found")

	// ErrFileOperationFailed is returned when replacing the source file with its transformed copy fails.
	ErrFileOperationFailed = errors.New("aes: file operation failed")

	// ErrEncryptionFailed wraps failures of the underlying transform while encrypting.
	ErrEncryptionFailed = errors.New("aes: encryption failed")

	// ErrDecryptionFailed wraps failures of the underlying transform while decrypting.
	ErrDecryptionFailed = errors.New("aes: decryption failed")

	// ErrInvalidFormat is returned when framed data or an IV header is malformed.
	ErrInvalidFormat = errors.New("aes: invalid encrypted data format")
)

// CipherError annotates a transform failure with the configuration and operation it happened in.
type CipherError struct {
	Operation     Operation
	Configuration Configuration
	Message       string
	Err           error
}

// NewCipherError builds a CipherError for the given operation.
func NewCipherError(op Operation, config Configuration, message string, err error) *CipherError {
	return &CipherError{Operation: op, Configuration: config, Message: message, Err: err}
}

func (e *CipherError) Error() string {
	msg := fmt.Sprintf("%s[%s] - %s", e.Operation, e.Configuration, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the operation sentinel and the cause.
func (e *CipherError) Unwrap() []error {
	sentinel := ErrEncryptionFailed
	if e.Operation == OperationDecrypt {
		sentinel = ErrDecryptionFailed
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

// FileOperationError reports a failed delete or rename while replacing a source file.
// TempPath is the transformed copy left on disk for manual recovery.
type FileOperationError struct {
	Op       string
	Path     string
	TempPath string
	Err      error
}

func (e *FileOperationError) Error() string {
	return fmt.Sprintf("aes: unable to %s %s (transformed copy kept at %s): %v", e.Op, e.Path, e.TempPath, e.Err)
}

// Unwrap exposes ErrFileOperationFailed and the cause.
func (e *FileOperationError) Unwrap() []error {
	return []error{ErrFileOperationFailed, e.Err}
}

// IsInvalidKey returns true if the error is or wraps ErrInvalidKey.
func IsInvalidKey(err error) bool {
	return errors.Is(err, ErrInvalidKey)
}

// IsInvalidIV returns true if the error is or wraps ErrInvalidIV.
func IsInvalidIV(err error) bool {
	return errors.Is(err, ErrInvalidIV)
}

// IsNotImplemented returns true if the error is or wraps ErrNotImplemented.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// IsFileNotFound returns true if the error is or wraps ErrFileNotFound.
func IsFileNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

// IsFileOperationFailed returns true if the error is or wraps ErrFileOperationFailed.
func IsFileOperationFailed(err error) bool {
	return errors.Is(err, ErrFileOperationFailed)
}

// IsEncryptionFailed returns true if the error is or wraps ErrEncryptionFailed.
func IsEncryptionFailed(err error) bool {
	return errors.Is(err, ErrEncryptionFailed)
}

// IsDecryptionFailed returns true if the error is or wraps ErrDecryptionFailed.
func IsDecryptionFailed(err error) bool {
	return errors.Is(err, ErrDecryptionFailed)
}

// IsInvalidFormat returns true if the error is or wraps ErrInvalidFormat.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}
