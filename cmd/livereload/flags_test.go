package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (AppFlags, error) {
	t.Helper()
	return parseFlags(flag.NewFlagSet("livereload", flag.ContinueOnError), args, io.Discard)
}

func TestParseFlags_Watch(t *testing.T) {
	flags, err := parse(t, "-c", "cfg.yaml", "-d", "static", "-e", "watch", "http://localhost:8080/")
	require.NoError(t, err)

	assert.Equal(t, "cfg.yaml", flags.GlobalConfigFile)
	assert.Equal(t, "static", flags.Driver)
	assert.True(t, flags.EnableOnStart)
	assert.Equal(t, cmdWatch, flags.Command)
	assert.Equal(t, "http://localhost:8080/", flags.Target)
}

func TestParseFlags_LongFormWins(t *testing.T) {
	flags, err := parse(t, "-config", "a.yaml", "-c", "b.yaml", "status", "3000")
	require.NoError(t, err)
	assert.Equal(t, "a.yaml", flags.GlobalConfigFile)
	assert.False(t, flags.EnableOnStart)
}

func TestParseFlags_Errors(t *testing.T) {
	_, err := parse(t)
	assert.Error(t, err)

	_, err = parse(t, "watch")
	assert.Error(t, err)

	_, err = parse(t, "enable")
	assert.Error(t, err)

	_, err = parse(t, "explode", "x")
	assert.Error(t, err)

	_, err = parse(t, "list")
	assert.NoError(t, err)
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "8080", portOf("http://localhost:8080/index.html"))
	assert.Equal(t, "3000", portOf("3000"))
	assert.Equal(t, "default", portOf("https://example.test/"))
}
