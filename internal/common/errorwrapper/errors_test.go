package errorwrapper

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	err := WrapError(io.EOF, "reading page")
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, "reading page: EOF", err.Error())

	assert.EqualError(t, WrapError(nil, "reading page"), "reading page: <nil>")
}

func TestErrorKinds(t *testing.T) {
	netErr := WrapError(NewNetworkError("http://localhost/a.css", "HEAD failed", io.ErrUnexpectedEOF), "probe")
	assert.ErrorIs(t, netErr, ErrNetworkFailure)
	assert.ErrorIs(t, netErr, io.ErrUnexpectedEOF)

	var target *NetworkError
	assert.True(t, errors.As(netErr, &target))
	assert.Equal(t, "http://localhost/a.css", target.URL)

	statusErr := NewStatusError("http://localhost/", 500, "load page")
	assert.ErrorIs(t, statusErr, ErrUnexpectedStatus)
	assert.Equal(t, "load page http://localhost/: status 500", statusErr.Error())

	valErr := NewValidationError("check_interval_ms", 0, "must be positive")
	assert.ErrorIs(t, valErr, ErrInvalidConfiguration)
	assert.NotErrorIs(t, valErr, ErrNetworkFailure)
}
