package v1

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/pkg/validators"
)

// ErrorResponse represents the structure of an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// GenerateKeyRequest represents the request to generate an AES key
type GenerateKeyRequest struct {
	KeyLength int `json:"key_length" validate:"required,aeskeylength"`
}

// Validate validates the GenerateKeyRequest struct
func (r *GenerateKeyRequest) Validate() error {
	if err := validators.New().Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// GenerateKeyResponse carries a base64 encoded AES key
type GenerateKeyResponse struct {
	ID        string `json:"id"`
	KeyLength int    `json:"key_length"`
	Key       string `json:"key"`
}

// EncryptRequest represents the request to encrypt a buffer.
// Without a key, a new key is generated and returned.
type EncryptRequest struct {
	Plaintext string `json:"plaintext" validate:"omitempty,base64"`
	Key       string `json:"key,omitempty" validate:"omitempty,base64"`
}

// Validate validates the EncryptRequest struct
func (r *EncryptRequest) Validate() error {
	if err := validators.New().Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// EncryptResponse carries the base64 encoded result of an encryption.
// Framed is the IV length byte, the IV and the ciphertext in a single value.
type EncryptResponse struct {
	ID         string `json:"id"`
	Key        string `json:"key"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
	Framed     string `json:"framed"`
}

// DecryptRequest represents the request to decrypt a framed buffer
type DecryptRequest struct {
	Key    string `json:"key" validate:"required,base64"`
	Framed string `json:"framed" validate:"required,base64"`
}

// Validate validates the DecryptRequest struct
func (r *DecryptRequest) Validate() error {
	if err := validators.New().Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// DecryptResponse carries the base64 encoded plaintext
type DecryptResponse struct {
	ID        string `json:"id"`
	Plaintext string `json:"plaintext"`
}

// ConfigurationResponse describes one AES configuration
type ConfigurationResponse struct {
	Name        string `json:"name"`
	KeyLength   int    `json:"key_length"`
	Mode        string `json:"mode"`
	Padding     string `json:"padding"`
	IVLength    int    `json:"iv_length"`
	Implemented bool   `json:"implemented"`
}
