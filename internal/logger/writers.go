package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newConsoleWriter renders to stderr; json goes out untouched.
func newConsoleWriter(format Format, out io.Writer) io.Writer {
	switch format {
	case FormatJSON:
		return out
	case FormatText:
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
}

// newFileWriter creates a rotating file writer. Console format is written
// without colour codes so the file stays readable.
func newFileWriter(opts Options) io.Writer {
	if dir := filepath.Dir(opts.FilePath); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}

	rotating := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
		LocalTime:  true,
	}

	if opts.Format == FormatJSON {
		return rotating
	}
	return zerolog.ConsoleWriter{Out: rotating, TimeFormat: time.RFC3339, NoColor: true}
}
