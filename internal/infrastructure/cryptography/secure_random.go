package cryptography

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
)

// secureRandom struct that implements the SecureByteSource interface
type secureRandom struct {
	reader io.Reader
}

// NewSecureByteSource returns a SecureByteSource reading from the operating system CSPRNG
func NewSecureByteSource() cryptoalg.SecureByteSource {
	return &secureRandom{reader: rand.Reader}
}

// Generate returns n random bytes
func (s *secureRandom) Generate(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid random byte count %d", n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}
