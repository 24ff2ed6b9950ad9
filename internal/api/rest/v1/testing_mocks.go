//go:build unit
// +build unit

package v1

import (
	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"

	"github.com/stretchr/testify/mock"
)

// MockBufferEncryptionService is a mock implementation of BufferEncryptionService
type MockBufferEncryptionService struct {
	mock.Mock
}

func (m *MockBufferEncryptionService) GenerateKey() (cryptoalg.Key, error) {
	args := m.Called()
	return args.Get(0).(cryptoalg.Key), args.Error(1)
}

func (m *MockBufferEncryptionService) Encrypt(plaintext []byte) (*cryptoalg.EncryptedBuffer, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoalg.EncryptedBuffer), args.Error(1)
}

func (m *MockBufferEncryptionService) EncryptWithKey(key cryptoalg.Key, plaintext []byte) (*cryptoalg.EncryptedBuffer, error) {
	args := m.Called(key, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoalg.EncryptedBuffer), args.Error(1)
}

func (m *MockBufferEncryptionService) DecryptFramed(key cryptoalg.Key, framed []byte) ([]byte, error) {
	args := m.Called(key, framed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
