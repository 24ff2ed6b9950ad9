package app

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"
	"github.com/awnumar/memguard"
)

// AesBufferEngine encrypts and decrypts in-memory buffers.
// Every entry point validates the key and IV it is handed, generated or not.
type AesBufferEngine struct {
	checker   *SanityChecker
	generator *KeyIVGenerator
	cipher    *BufferCipher
	logger    logger.Logger
}

// NewAesBufferEngine wires an engine from its parts. Most callers use EngineFactory.
func NewAesBufferEngine(checker *SanityChecker, generator *KeyIVGenerator, cipher *BufferCipher, logger logger.Logger) *AesBufferEngine {
	return &AesBufferEngine{
		checker:   checker,
		generator: generator,
		cipher:    cipher,
		logger:    logger,
	}
}

// Configuration returns the configuration of the engine
func (e *AesBufferEngine) Configuration() cryptoalg.Configuration {
	return e.checker.Configuration()
}

// GenerateKey returns a new random key of the configured length
func (e *AesBufferEngine) GenerateKey() (cryptoalg.Key, error) {
	key, err := e.generator.GenerateKey()
	if err != nil {
		return cryptoalg.Key{}, err
	}
	if err := e.checker.ValidateKey(key); err != nil {
		return cryptoalg.Key{}, err
	}
	return key, nil
}

// Encrypt encrypts plaintext with a freshly generated key and IV
func (e *AesBufferEngine) Encrypt(plaintext []byte) (*cryptoalg.EncryptedBuffer, error) {
	keyAndIV, err := e.generator.GenerateKeyAndIV()
	if err != nil {
		return nil, err
	}
	return e.EncryptWithKeyAndIV(keyAndIV, plaintext)
}

// EncryptWithKey encrypts plaintext with key and a freshly generated IV
func (e *AesBufferEngine) EncryptWithKey(key cryptoalg.Key, plaintext []byte) (*cryptoalg.EncryptedBuffer, error) {
	if err := e.checker.ValidateKey(key); err != nil {
		return nil, err
	}
	iv, err := e.generator.GenerateIV()
	if err != nil {
		return nil, err
	}
	return e.EncryptWithKeyAndIV(cryptoalg.KeyAndIV{Key: key, IV: iv}, plaintext)
}

// EncryptWithKeyAndIV encrypts plaintext with a caller supplied key and IV.
// Reusing an IV with the same key leaks information; prefer Encrypt or EncryptWithKey.
func (e *AesBufferEngine) EncryptWithKeyAndIV(keyAndIV cryptoalg.KeyAndIV, plaintext []byte) (*cryptoalg.EncryptedBuffer, error) {
	if err := e.checker.Validate(keyAndIV); err != nil {
		return nil, err
	}

	ciphertext, err := e.run(plaintext, keyAndIV, cryptoalg.OperationEncrypt)
	if err != nil {
		return nil, err
	}

	e.logger.Info(fmt.Sprintf("Encrypted %d bytes with %s", len(plaintext), e.Configuration()))
	return &cryptoalg.EncryptedBuffer{IV: keyAndIV.IV, Key: keyAndIV.Key, Ciphertext: ciphertext}, nil
}

// Decrypt decrypts an EncryptedBuffer with the key and IV it carries
func (e *AesBufferEngine) Decrypt(buffer *cryptoalg.EncryptedBuffer) ([]byte, error) {
	if buffer == nil {
		return nil, fmt.Errorf("%w: encrypted buffer is nil", cryptoalg.ErrInvalidFormat)
	}
	return e.DecryptWithKeyAndIV(buffer.Ciphertext, buffer.Key, buffer.IV)
}

// DecryptWithKeyAndIV decrypts ciphertext with key and iv
func (e *AesBufferEngine) DecryptWithKeyAndIV(ciphertext []byte, key cryptoalg.Key, iv cryptoalg.IV) ([]byte, error) {
	keyAndIV := cryptoalg.KeyAndIV{Key: key, IV: iv}
	if err := e.checker.Validate(keyAndIV); err != nil {
		return nil, err
	}

	plaintext, err := e.run(ciphertext, keyAndIV, cryptoalg.OperationDecrypt)
	if err != nil {
		return nil, err
	}

	e.logger.Info(fmt.Sprintf("Decrypted %d bytes with %s", len(ciphertext), e.Configuration()))
	return plaintext, nil
}

// DecryptFramed decrypts data laid out as [IV length][IV][ciphertext]
func (e *AesBufferEngine) DecryptFramed(key cryptoalg.Key, framed []byte) ([]byte, error) {
	iv, ciphertext, err := cryptoalg.Unframe(framed)
	if err != nil {
		return nil, err
	}
	return e.DecryptWithKeyAndIV(ciphertext, key, iv)
}

func (e *AesBufferEngine) run(data []byte, keyAndIV cryptoalg.KeyAndIV, op cryptoalg.Operation) ([]byte, error) {
	key := keyAndIV.Key.Bytes()
	defer memguard.WipeBytes(key)
	iv := keyAndIV.IV.Bytes()
	defer memguard.WipeBytes(iv)

	out, err := e.cipher.Run(data, iv, key, op)
	if err != nil {
		e.logger.Error(fmt.Sprintf("%s failed: %v", op, err))
		return nil, err
	}
	return out, nil
}
