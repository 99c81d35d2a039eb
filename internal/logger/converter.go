package logger

import (
	"github.com/aleister1102/livereload/internal/config"
	"github.com/rs/zerolog"
)

// OptionsFromConfig resolves the log section of the global config. Unknown
// levels fall back to info; validation reports them earlier.
func OptionsFromConfig(cfg config.LogConfig) Options {
	opts := defaultOptions()

	if level, err := ParseLevel(cfg.LogLevel); err == nil {
		opts.Level = level
	} else {
		opts.Level = zerolog.InfoLevel
	}
	opts.Format = ParseFormat(cfg.LogFormat)
	opts.FilePath = cfg.LogFile

	if cfg.MaxLogSizeMB > 0 {
		opts.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		opts.MaxBackups = cfg.MaxLogBackups
	}
	opts.MaxAgeDays = cfg.MaxLogAgeDays
	opts.Compress = cfg.CompressLogs

	return opts
}
