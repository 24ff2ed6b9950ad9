package cryptoalg

// CipherTransform is a stateful block cipher engine supplied by a platform backend.
// A transform serves one operation at a time and must not be shared between goroutines.
type CipherTransform interface {
	// Init prepares the transform for a new operation with the given IV and key.
	// It must be called before any other method.
	Init(iv, key []byte, op Operation) error

	// Update feeds the next chunk and returns the bytes ready so far, which may be empty.
	Update(chunk []byte) ([]byte, error)

	// Finalize returns the remaining bytes (applying or removing padding) and leaves the transform uninitialized.
	Finalize() ([]byte, error)

	// OutputSize returns an upper bound of the output of the next Update or Finalize for inputLength bytes.
	OutputSize(inputLength int) int
}

// CipherTransformFactory creates a dedicated CipherTransform per operation.
type CipherTransformFactory interface {
	// NewTransform returns a fresh transform for the configuration, or ErrNotImplemented for reserved modes.
	NewTransform(config Configuration) (CipherTransform, error)
}

// SecureByteSource produces cryptographically secure random bytes.
type SecureByteSource interface {
	// Generate returns n random bytes.
	Generate(n int) ([]byte, error)
}

// BufferEncryptionService encrypts and decrypts in-memory buffers.
type BufferEncryptionService interface {
	// GenerateKey returns a new random key matching the configured key length.
	GenerateKey() (Key, error)

	// Encrypt encrypts plaintext with a freshly generated key and IV.
	Encrypt(plaintext []byte) (*EncryptedBuffer, error)

	// EncryptWithKey encrypts plaintext with the given key and a freshly generated IV.
	EncryptWithKey(key Key, plaintext []byte) (*EncryptedBuffer, error)

	// DecryptFramed decrypts a buffer laid out by Frame.
	DecryptFramed(key Key, framed []byte) ([]byte, error)
}
