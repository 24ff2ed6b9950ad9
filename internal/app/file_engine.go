package app

import (
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"
)

// AesFileEngine encrypts and decrypts files on disk.
// Keys and IVs are validated before any file is opened.
type AesFileEngine struct {
	checker   *SanityChecker
	generator *KeyIVGenerator
	files     *FileCipher
	logger    logger.Logger
}

// NewAesFileEngine wires an engine from its parts. Most callers use EngineFactory.
func NewAesFileEngine(checker *SanityChecker, generator *KeyIVGenerator, files *FileCipher, logger logger.Logger) *AesFileEngine {
	return &AesFileEngine{
		checker:   checker,
		generator: generator,
		files:     files,
		logger:    logger,
	}
}

// Configuration returns the configuration of the engine
func (e *AesFileEngine) Configuration() cryptoalg.Configuration {
	return e.checker.Configuration()
}

// GenerateKey returns a new random key of the configured length
func (e *AesFileEngine) GenerateKey() (cryptoalg.Key, error) {
	key, err := e.generator.GenerateKey()
	if err != nil {
		return cryptoalg.Key{}, err
	}
	if err := e.checker.ValidateKey(key); err != nil {
		return cryptoalg.Key{}, err
	}
	return key, nil
}

// Encrypt encrypts the file at path with a generated key and IV. The IV is not stored in the file.
func (e *AesFileEngine) Encrypt(path string, replaceOriginal bool) (*cryptoalg.EncryptedFileReference, error) {
	keyAndIV, err := e.generator.GenerateKeyAndIV()
	if err != nil {
		return nil, err
	}
	return e.encrypt(keyAndIV, path, false, replaceOriginal)
}

// EncryptWithKey encrypts the file at path with key and a generated IV. The IV is not stored in the file.
func (e *AesFileEngine) EncryptWithKey(key cryptoalg.Key, path string, replaceOriginal bool) (*cryptoalg.EncryptedFileReference, error) {
	keyAndIV, err := e.withGeneratedIV(key)
	if err != nil {
		return nil, err
	}
	return e.encrypt(keyAndIV, path, false, replaceOriginal)
}

// EncryptWithKeyAndIV encrypts the file at path with a caller supplied key and IV.
// Reusing an IV with the same key leaks information; prefer Encrypt or EncryptWithKey.
func (e *AesFileEngine) EncryptWithKeyAndIV(keyAndIV cryptoalg.KeyAndIV, path string, replaceOriginal bool) (*cryptoalg.EncryptedFileReference, error) {
	return e.encrypt(keyAndIV, path, false, replaceOriginal)
}

// EncryptEmbeddingIV encrypts the file at path with a generated key and IV, writing the IV at the head of the file.
func (e *AesFileEngine) EncryptEmbeddingIV(path string, replaceOriginal bool) (*cryptoalg.EncryptedFileReference, error) {
	keyAndIV, err := e.generator.GenerateKeyAndIV()
	if err != nil {
		return nil, err
	}
	return e.encrypt(keyAndIV, path, true, replaceOriginal)
}

// EncryptEmbeddingIVWithKey encrypts the file at path with key and a generated IV, writing the IV at the head of the file.
func (e *AesFileEngine) EncryptEmbeddingIVWithKey(key cryptoalg.Key, path string, replaceOriginal bool) (*cryptoalg.EncryptedFileReference, error) {
	keyAndIV, err := e.withGeneratedIV(key)
	if err != nil {
		return nil, err
	}
	return e.encrypt(keyAndIV, path, true, replaceOriginal)
}

// EncryptEmbeddingIVWithKeyAndIV encrypts the file at path with a caller supplied key and IV,
// writing the IV at the head of the file.
func (e *AesFileEngine) EncryptEmbeddingIVWithKeyAndIV(keyAndIV cryptoalg.KeyAndIV, path string, replaceOriginal bool) (*cryptoalg.EncryptedFileReference, error) {
	return e.encrypt(keyAndIV, path, true, replaceOriginal)
}

// Decrypt decrypts the file a reference points at with the key and IV it carries.
func (e *AesFileEngine) Decrypt(ref *cryptoalg.EncryptedFileReference, replaceOriginal bool) (*cryptoalg.DecryptedFileReference, error) {
	if ref == nil {
		return nil, fmt.Errorf("encrypted file reference is nil")
	}
	if err := e.checker.Validate(ref.KeyAndIV); err != nil {
		return nil, err
	}

	result, err := e.files.Run(FileRequest{
		Path:            ref.Path,
		Key:             ref.KeyAndIV.Key,
		IV:              ref.KeyAndIV.IV,
		Operation:       cryptoalg.OperationDecrypt,
		ReplaceOriginal: replaceOriginal,
	})
	if err != nil {
		e.logger.Error(fmt.Sprintf("Failed to decrypt %s: %v", ref.Path, err))
		return nil, err
	}
	return &cryptoalg.DecryptedFileReference{KeyAndIV: ref.KeyAndIV, Path: result.Path}, nil
}

// DecryptWithIVFromFile decrypts a file whose IV is stored at its head.
func (e *AesFileEngine) DecryptWithIVFromFile(key cryptoalg.Key, path string, replaceOriginal bool) (*cryptoalg.DecryptedFileReference, error) {
	if err := e.checker.ValidateKey(key); err != nil {
		return nil, err
	}

	result, err := e.files.Run(FileRequest{
		Path:            path,
		Key:             key,
		Operation:       cryptoalg.OperationDecrypt,
		IVInFile:        true,
		ReplaceOriginal: replaceOriginal,
	})
	if err != nil {
		e.logger.Error(fmt.Sprintf("Failed to decrypt %s: %v", path, err))
		return nil, err
	}
	return &cryptoalg.DecryptedFileReference{
		KeyAndIV: cryptoalg.KeyAndIV{Key: key, IV: result.IV},
		Path:     result.Path,
	}, nil
}

func (e *AesFileEngine) withGeneratedIV(key cryptoalg.Key) (cryptoalg.KeyAndIV, error) {
	if err := e.checker.ValidateKey(key); err != nil {
		return cryptoalg.KeyAndIV{}, err
	}
	iv, err := e.generator.GenerateIV()
	if err != nil {
		return cryptoalg.KeyAndIV{}, err
	}
	return cryptoalg.KeyAndIV{Key: key, IV: iv}, nil
}

func (e *AesFileEngine) encrypt(keyAndIV cryptoalg.KeyAndIV, path string, ivInFile, replaceOriginal bool) (*cryptoalg.EncryptedFileReference, error) {
	if err := e.checker.Validate(keyAndIV); err != nil {
		return nil, err
	}

	result, err := e.files.Run(FileRequest{
		Path:            path,
		Key:             keyAndIV.Key,
		IV:              keyAndIV.IV,
		Operation:       cryptoalg.OperationEncrypt,
		IVInFile:        ivInFile,
		ReplaceOriginal: replaceOriginal,
	})
	if err != nil {
		e.logger.Error(fmt.Sprintf("Failed to encrypt %s: %v", path, err))
		return nil, err
	}
	return &cryptoalg.EncryptedFileReference{KeyAndIV: keyAndIV, Path: result.Path}, nil
}
