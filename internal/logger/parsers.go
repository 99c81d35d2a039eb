package logger

import (
	"strings"

	"github.com/aleister1102/livereload/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// ParseLevel accepts zerolog level names in any case. Empty means info.
func ParseLevel(levelStr string) (zerolog.Level, error) {
	if levelStr == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.WrapError(err, "invalid log level")
	}
	return level, nil
}

// ParseFormat maps a format name onto a Format, defaulting to console.
func ParseFormat(name string) Format {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name {
			return f
		}
	}
	return FormatConsole
}
