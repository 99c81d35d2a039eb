package logger

import (
	"io"
	stdlog "log"
	"os"

	"github.com/aleister1102/livereload/internal/common/errorwrapper"
	"github.com/aleister1102/livereload/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder assembles the root logger from config.
type LoggerBuilder struct {
	opts   Options
	stderr io.Writer
}

// NewLoggerBuilder starts from console output at info level.
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		opts:   defaultOptions(),
		stderr: os.Stderr,
	}
}

// WithConfig applies the log section of the global config.
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	lb.opts = OptionsFromConfig(cfg)
	return lb
}

// WithConsoleOutput redirects console output, mainly for tests.
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.stderr = w
	return lb
}

// Build returns the logger and routes the standard library log package into it.
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	if err := lb.validate(); err != nil {
		return zerolog.Nop(), err
	}

	var writers []io.Writer
	if lb.opts.Console {
		writers = append(writers, newConsoleWriter(lb.opts.Format, lb.stderr))
	}
	if lb.opts.FilePath != "" {
		writers = append(writers, newFileWriter(lb.opts))
	}
	if len(writers) == 0 {
		return zerolog.Nop(), errorwrapper.NewError("no output writers configured")
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.opts.Level).
		With().
		Timestamp().
		Logger()

	stdlog.SetOutput(zl)
	stdlog.SetFlags(0)

	return zl, nil
}

func (lb *LoggerBuilder) validate() error {
	if lb.opts.FilePath == "" {
		return nil
	}
	if lb.opts.MaxSizeMB <= 0 {
		return errorwrapper.NewValidationError("max_log_size_mb", lb.opts.MaxSizeMB, "must be positive when a log file is set")
	}
	if lb.opts.MaxAgeDays < 0 {
		return errorwrapper.NewValidationError("max_log_age_days", lb.opts.MaxAgeDays, "must not be negative")
	}
	return nil
}
