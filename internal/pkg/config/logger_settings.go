package config

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/aes-vault/internal/pkg/validators"
)

// Rotation bounds of the file logger
const (
	MaxLogFileSizeMB  = 100
	MaxLogFileBackups = 10
	MaxLogFileAgeDays = 365
)

// LoggerSettings selects the log level and the sink. Rotation settings apply to the file sink only.
type LoggerSettings struct {
	LogLevel   string `env:"LEVEL" envDefault:"info" validate:"required,oneof=info debug error warning critical"`
	LogType    string `env:"TYPE" envDefault:"console" validate:"required,oneof=console file"`
	FilePath   string `env:"FILE_PATH"`
	MaxSize    int    `env:"MAX_SIZE" envDefault:"10"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"3"`
	MaxAge     int    `env:"MAX_AGE" envDefault:"28"`
}

// Validate checks the level and sink, and for the file sink reports every rotation setting out of bounds
func (s *LoggerSettings) Validate() error {
	if err := validators.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}
	if s.LogType != LogTypeFile {
		return nil
	}

	var errs []error
	if s.FilePath == "" {
		errs = append(errs, errors.New("file path is required for file logger"))
	}
	if s.MaxSize < 1 || s.MaxSize > MaxLogFileSizeMB {
		errs = append(errs, fmt.Errorf("max size must be between 1 and %d MB", MaxLogFileSizeMB))
	}
	if s.MaxBackups < 1 || s.MaxBackups > MaxLogFileBackups {
		errs = append(errs, fmt.Errorf("max backups must be between 1 and %d", MaxLogFileBackups))
	}
	if s.MaxAge < 1 || s.MaxAge > MaxLogFileAgeDays {
		errs = append(errs, fmt.Errorf("max age must be between 1 and %d days", MaxLogFileAgeDays))
	}
	return errors.Join(errs...)
}
