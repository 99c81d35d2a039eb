package logger

import "github.com/rs/zerolog"

// Format selects how log lines are rendered.
type Format uint8

const (
	FormatConsole Format = iota
	FormatJSON
	FormatText
)

var formatNames = map[Format]string{
	FormatConsole: "console",
	FormatJSON:    "json",
	FormatText:    "text",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return formatNames[FormatConsole]
}

// Options is the resolved logger setup. An empty FilePath disables the file sink.
type Options struct {
	Level      zerolog.Level
	Format     Format
	Console    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func defaultOptions() Options {
	return Options{
		Level:      zerolog.InfoLevel,
		Format:     FormatConsole,
		Console:    true,
		MaxSizeMB:  100,
		MaxBackups: 3,
	}
}
