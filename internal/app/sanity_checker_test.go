//go:build unit
// +build unit

package app

import (
	"testing"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSanityChecker_ReservedModes(t *testing.T) {
	for _, config := range []cryptoalg.Configuration{
		cryptoalg.AesCtr256, cryptoalg.AesCtr192, cryptoalg.AesCtr128,
		cryptoalg.AesGcm256, cryptoalg.AesGcm192, cryptoalg.AesGcm128,
	} {
		for _, policy := range []IVPolicy{RejectZeroIV, WarnAndAllowZeroIV} {
			checker, err := NewSanityChecker(config, policy)
			assert.Nil(t, checker)
			assert.True(t, cryptoalg.IsNotImplemented(err), "%s %s", config.Name, policy)
		}
	}
}

func TestNewSanityChecker_UnknownPolicy(t *testing.T) {
	_, err := NewSanityChecker(cryptoalg.AesCbcPkcs7256, IVPolicy(9))
	assert.Error(t, err)
}

func TestSanityChecker_ValidateKey(t *testing.T) {
	checker, err := NewSanityChecker(cryptoalg.AesCbcPkcs7256, RejectZeroIV)
	require.NoError(t, err)

	for length := 0; length <= 64; length++ {
		err := checker.ValidateKey(testKey(length))
		switch length {
		case 16, 24, 32:
			assert.NoError(t, err, "length %d", length)
		default:
			assert.True(t, cryptoalg.IsInvalidKey(err), "length %d", length)
		}
	}

	for _, length := range []int{16, 24, 32} {
		err := checker.ValidateKey(cryptoalg.NewKey(make([]byte, length)))
		assert.True(t, cryptoalg.IsInvalidKey(err), "zero key of %d bytes", length)
	}
}

func TestSanityChecker_ValidateIV(t *testing.T) {
	tests := []struct {
		name          string
		policy        IVPolicy
		iv            cryptoalg.IV
		expectedError bool
		expectHook    bool
	}{
		{"secure valid", RejectZeroIV, testIV(16), false, false},
		{"secure short", RejectZeroIV, testIV(12), true, false},
		{"secure long", RejectZeroIV, testIV(17), true, false},
		{"secure empty", RejectZeroIV, cryptoalg.NewIV(nil), true, false},
		{"secure zero", RejectZeroIV, cryptoalg.NewIV(make([]byte, 16)), true, false},
		{"non-secure valid", WarnAndAllowZeroIV, testIV(16), false, false},
		{"non-secure short", WarnAndAllowZeroIV, testIV(8), true, false},
		{"non-secure zero", WarnAndAllowZeroIV, cryptoalg.NewIV(make([]byte, 16)), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hookCalls := 0
			checker, err := NewSanityChecker(cryptoalg.AesCbcPkcs7128, tt.policy, WithInsecureIVHook(func(config cryptoalg.Configuration) {
				hookCalls++
				assert.Equal(t, cryptoalg.AesCbcPkcs7128, config)
			}))
			require.NoError(t, err)

			err = checker.ValidateIV(tt.iv)
			if tt.expectedError {
				assert.True(t, cryptoalg.IsInvalidIV(err))
			} else {
				assert.NoError(t, err)
			}

			if tt.expectHook {
				assert.Equal(t, 1, hookCalls)
			} else {
				assert.Zero(t, hookCalls)
			}
		})
	}
}

func TestSanityChecker_DefaultHookIsNoop(t *testing.T) {
	checker, err := NewSanityChecker(cryptoalg.AesCbcPkcs7256, WarnAndAllowZeroIV, WithInsecureIVHook(nil))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.NoError(t, checker.ValidateIV(cryptoalg.NewIV(make([]byte, 16))))
	})
}

func TestSanityChecker_ValidateChecksIVFirst(t *testing.T) {
	checker, err := NewSanityChecker(cryptoalg.AesCbcPkcs7256, RejectZeroIV)
	require.NoError(t, err)

	err = checker.Validate(cryptoalg.KeyAndIV{Key: testKey(5), IV: testIV(5)})
	assert.True(t, cryptoalg.IsInvalidIV(err))
	assert.False(t, cryptoalg.IsInvalidKey(err))

	err = checker.Validate(cryptoalg.KeyAndIV{Key: testKey(5), IV: testIV(16)})
	assert.True(t, cryptoalg.IsInvalidKey(err))

	assert.NoError(t, checker.Validate(cryptoalg.KeyAndIV{Key: testKey(32), IV: testIV(16)}))
	assert.Equal(t, RejectZeroIV, checker.Policy())
	assert.Equal(t, cryptoalg.AesCbcPkcs7256, checker.Configuration())
}
