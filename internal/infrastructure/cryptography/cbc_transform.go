package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/awnumar/memguard"
)

// cbcTransform implements cryptoalg.CipherTransform for AES in CBC mode.
// Input that does not fill a whole block is buffered until the next Update or Finalize.
type cbcTransform struct {
	padding     cryptoalg.Padding
	op          cryptoalg.Operation
	mode        cipher.BlockMode
	pending     []byte
	initialized bool
}

func newCBCTransform(padding cryptoalg.Padding) *cbcTransform {
	return &cbcTransform{padding: padding}
}

// Init prepares the transform for a new operation.
func (t *cbcTransform) Init(iv, key []byte, op cryptoalg.Operation) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("%w: %v", cryptoalg.ErrInvalidKey, err)
	}
	if len(iv) != aes.BlockSize {
		return fmt.Errorf("%w: CBC requires a %d byte IV, got %d", cryptoalg.ErrInvalidIV, aes.BlockSize, len(iv))
	}

	switch op {
	case cryptoalg.OperationEncrypt:
		t.mode = cipher.NewCBCEncrypter(block, iv)
	case cryptoalg.OperationDecrypt:
		t.mode = cipher.NewCBCDecrypter(block, iv)
	default:
		return fmt.Errorf("unsupported operation %s", op)
	}

	t.op = op
	t.reset()
	t.initialized = true
	return nil
}

// Update processes every complete block available. While decrypting padded data
// the last complete block is held back, since it may carry the padding.
func (t *cbcTransform) Update(chunk []byte) ([]byte, error) {
	t.mustBeInitialized()

	t.pending = append(t.pending, chunk...)

	n := len(t.pending) - len(t.pending)%aes.BlockSize
	if t.op == cryptoalg.OperationDecrypt && t.padded() && n == len(t.pending) && n > 0 {
		n -= aes.BlockSize
	}
	if n == 0 {
		return []byte{}, nil
	}

	out := make([]byte, n)
	t.mode.CryptBlocks(out, t.pending[:n])

	rest := copy(t.pending, t.pending[n:])
	memguard.WipeBytes(t.pending[rest:])
	t.pending = t.pending[:rest]
	return out, nil
}

// Finalize processes the buffered tail and leaves the transform uninitialized.
func (t *cbcTransform) Finalize() ([]byte, error) {
	t.mustBeInitialized()
	defer func() {
		t.reset()
		t.initialized = false
	}()

	if t.op == cryptoalg.OperationEncrypt {
		tail := t.pending
		if t.padded() {
			tail = pkcs7Pad(t.pending, aes.BlockSize)
		}
		if len(tail)%aes.BlockSize != 0 {
			return nil, fmt.Errorf("input length is not a multiple of the %d byte block size", aes.BlockSize)
		}
		out := make([]byte, len(tail))
		t.mode.CryptBlocks(out, tail)
		return out, nil
	}

	if len(t.pending)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length is not a multiple of the %d byte block size", aes.BlockSize)
	}
	out := make([]byte, len(t.pending))
	t.mode.CryptBlocks(out, t.pending)
	if !t.padded() {
		return out, nil
	}

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		memguard.WipeBytes(out)
		return nil, err
	}
	return plain, nil
}

// OutputSize returns an upper bound of the bytes produced for inputLength more bytes,
// including the buffered ones.
func (t *cbcTransform) OutputSize(inputLength int) int {
	t.mustBeInitialized()

	total := len(t.pending) + inputLength
	if t.op == cryptoalg.OperationEncrypt && t.padded() {
		return (total/aes.BlockSize + 1) * aes.BlockSize
	}
	return total
}

func (t *cbcTransform) padded() bool {
	return t.padding == cryptoalg.PaddingPKCS7
}

func (t *cbcTransform) reset() {
	memguard.WipeBytes(t.pending)
	t.pending = t.pending[:0]
}

func (t *cbcTransform) mustBeInitialized() {
	if !t.initialized {
		panic(cryptoalg.ErrNotInitialized)
	}
}
