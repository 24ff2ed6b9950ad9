//go:build unit
// +build unit

package app

import (
	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"

	"github.com/stretchr/testify/mock"
)

// MockSecureByteSource is a mock implementation of SecureByteSource
type MockSecureByteSource struct {
	mock.Mock
}

func (m *MockSecureByteSource) Generate(n int) ([]byte, error) {
	args := m.Called(n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCipherTransform is a mock implementation of CipherTransform
type MockCipherTransform struct {
	mock.Mock
}

func (m *MockCipherTransform) Init(iv, key []byte, op cryptoalg.Operation) error {
	args := m.Called(iv, key, op)
	return args.Error(0)
}

func (m *MockCipherTransform) Update(chunk []byte) ([]byte, error) {
	args := m.Called(chunk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCipherTransform) Finalize() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCipherTransform) OutputSize(inputLength int) int {
	args := m.Called(inputLength)
	return args.Int(0)
}

// MockCipherTransformFactory is a mock implementation of CipherTransformFactory
type MockCipherTransformFactory struct {
	mock.Mock
}

func (m *MockCipherTransformFactory) NewTransform(config cryptoalg.Configuration) (cryptoalg.CipherTransform, error) {
	args := m.Called(config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoalg.CipherTransform), args.Error(1)
}
