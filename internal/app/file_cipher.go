package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/aes-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/aes-vault/internal/pkg/logger"
	"github.com/awnumar/memguard"
)

// FileRequest describes a single file transformation.
type FileRequest struct {
	Path      string
	Key       cryptoalg.Key
	IV        cryptoalg.IV
	Operation cryptoalg.Operation

	// IVInFile writes the IV at the head of the output when encrypting,
	// and reads it from the head of the input when decrypting (IV is then ignored).
	IVInFile bool

	// ReplaceOriginal replaces the source with the transformed file.
	// Otherwise the source is left untouched and the temp file is the result.
	ReplaceOriginal bool
}

// FileResult is the outcome of a file transformation.
type FileResult struct {
	// Path is the absolute path of the transformed file.
	Path string
	// IV is the IV the transform ran with.
	IV cryptoalg.IV
}

// FileCipherOption configures a FileCipher
type FileCipherOption func(*FileCipher)

// WithChunkSize sets the number of bytes read per iteration of the copy loop.
func WithChunkSize(size int) FileCipherOption {
	return func(f *FileCipher) {
		if size > 0 {
			f.chunkSize = size
		}
	}
}

// WithIVChecker validates IVs read from a file head before they are used.
func WithIVChecker(checker *SanityChecker) FileCipherOption {
	return func(f *FileCipher) {
		f.checker = checker
	}
}

// FileCipher streams a file through a cipher transform into a temporary file next to it,
// then either replaces the source or hands the temporary file back.
type FileCipher struct {
	config     cryptoalg.Configuration
	transforms cryptoalg.CipherTransformFactory
	checker    *SanityChecker
	chunkSize  int
	logger     logger.Logger
}

// NewFileCipher creates a FileCipher for config
func NewFileCipher(config cryptoalg.Configuration, transforms cryptoalg.CipherTransformFactory, logger logger.Logger, opts ...FileCipherOption) (*FileCipher, error) {
	if transforms == nil {
		return nil, fmt.Errorf("cipher transform factory is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	f := &FileCipher{
		config:     config,
		transforms: transforms,
		chunkSize:  cryptoalg.DefaultChunkSize,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// TempPath returns the path of the temporary output for source and op.
func TempPath(source string, op cryptoalg.Operation) string {
	if op == cryptoalg.OperationDecrypt {
		return source + "." + cryptoalg.DecryptedFileSuffix
	}
	return source + "." + cryptoalg.EncryptedFileSuffix
}

// Run transforms the file described by req.
// Validation failures happen before the temporary file is created. A failure while copying
// removes the partial temporary file. A failure while replacing the source returns
// a *cryptoalg.FileOperationError and keeps the temporary file.
func (f *FileCipher) Run(req FileRequest) (*FileResult, error) {
	source, err := filepath.Abs(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", req.Path, err)
	}

	info, err := os.Stat(source)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", cryptoalg.ErrFileNotFound, source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", source, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", cryptoalg.ErrFileNotFound, source)
	}

	tempPath := TempPath(source, req.Operation)
	f.logger.Info(fmt.Sprintf("%s of %s started with %s", req.Operation, source, f.config))

	src, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer func() {
		_ = src.Close()
	}()

	iv := req.IV
	if req.Operation == cryptoalg.OperationDecrypt && req.IVInFile {
		if iv, err = f.readIV(src); err != nil {
			return nil, err
		}
	}

	transform, err := f.transforms.NewTransform(f.config)
	if err != nil {
		return nil, err
	}

	keyBytes := req.Key.Bytes()
	defer memguard.WipeBytes(keyBytes)
	ivBytes := iv.Bytes()
	defer memguard.WipeBytes(ivBytes)

	if err := transform.Init(ivBytes, keyBytes, req.Operation); err != nil {
		return nil, cryptoalg.NewCipherError(req.Operation, f.config, "unable to initialize cipher", err)
	}

	if err := f.transformInto(tempPath, src, transform, req.Operation, req.IVInFile, ivBytes); err != nil {
		if rmErr := os.Remove(tempPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			f.logger.Warn(fmt.Sprintf("Failed to remove partial output %s: %v", tempPath, rmErr))
		}
		return nil, err
	}

	if err := src.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", source, err)
	}

	result := &FileResult{Path: tempPath, IV: iv}
	if req.ReplaceOriginal {
		if err := replaceFile(source, tempPath); err != nil {
			return nil, err
		}
		result.Path = source
	}

	f.logger.Info(fmt.Sprintf("%s of %s succeeded, output written to %s", req.Operation, source, result.Path))
	return result, nil
}

// readIV reads the IV from the head of src.
func (f *FileCipher) readIV(src io.Reader) (cryptoalg.IV, error) {
	head := make([]byte, f.config.IVLength())
	defer memguard.WipeBytes(head)

	if _, err := io.ReadFull(src, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return cryptoalg.IV{}, fmt.Errorf("%w: file is shorter than a %d byte IV", cryptoalg.ErrInvalidFormat, len(head))
		}
		return cryptoalg.IV{}, fmt.Errorf("failed to read IV: %w", err)
	}

	iv := cryptoalg.NewIV(head)
	if f.checker != nil {
		if err := f.checker.ValidateIV(iv); err != nil {
			return cryptoalg.IV{}, err
		}
	}
	return iv, nil
}

// transformInto writes the transformed content of src to a truncated temp file.
func (f *FileCipher) transformInto(tempPath string, src io.Reader, transform cryptoalg.CipherTransform, op cryptoalg.Operation, ivInFile bool, iv []byte) error {
	dst, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tempPath, err)
	}
	defer func() {
		_ = dst.Close()
	}()

	if op == cryptoalg.OperationEncrypt {
		if ivInFile {
			if _, err := dst.Write(iv); err != nil {
				return fmt.Errorf("failed to write IV to %s: %w", tempPath, err)
			}
		}

		out := newCipherWriter(dst, transform, op, f.config)
		if err := copyChunks(out, src, f.chunkSize); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}
	} else {
		in := newCipherReader(src, transform, op, f.config, f.chunkSize)
		if err := copyChunks(dst, in, f.chunkSize); err != nil {
			return err
		}
	}

	if err := dst.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tempPath, err)
	}
	return dst.Close()
}

// copyChunks copies src to dst chunk by chunk until src reports io.EOF.
// Empty reads are skipped.
func copyChunks(dst io.Writer, src io.Reader, chunkSize int) error {
	buf := make([]byte, chunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func replaceFile(source, tempPath string) error {
	if err := os.Remove(source); err != nil {
		return &cryptoalg.FileOperationError{Op: "remove", Path: source, TempPath: tempPath, Err: err}
	}
	if err := os.Rename(tempPath, source); err != nil {
		return &cryptoalg.FileOperationError{Op: "rename", Path: source, TempPath: tempPath, Err: err}
	}
	return nil
}
