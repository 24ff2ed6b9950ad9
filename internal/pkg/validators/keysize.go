package validators

import (
	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/go-playground/validator/v10"
)

// Tags registered by Register
const (
	AESKeyLengthTag     = "aeskeylength"
	AESConfigurationTag = "aesconfiguration"
)

// AESKeyLengthValidation validates an AES key length expressed in bits (128, 192 or 256).
func AESKeyLengthValidation(fl validator.FieldLevel) bool {
	return cryptoalg.KeyLength(fl.Field().Int()).IsSupported()
}

// AESConfigurationValidation validates that a string names an operable AES configuration.
// Reserved block modes such as CTR and GCM are rejected.
func AESConfigurationValidation(fl validator.FieldLevel) bool {
	config, err := cryptoalg.ConfigurationByName(fl.Field().String())
	if err != nil {
		return false
	}
	return config.Validate() == nil
}

// Register adds the AES validation tags to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(AESKeyLengthTag, AESKeyLengthValidation); err != nil {
		return err
	}
	return v.RegisterValidation(AESConfigurationTag, AESConfigurationValidation)
}

// New returns a validator with the AES tags registered.
func New() *validator.Validate {
	v := validator.New()
	// Register only fails for empty tags or nil functions.
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}
