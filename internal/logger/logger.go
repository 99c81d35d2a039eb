package logger

import (
	"github.com/aleister1102/livereload/internal/config"
	"github.com/rs/zerolog"
)

// New creates the root logger from the log section of the config.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}
