package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))

	err := Wrap(io.EOF, "reading %s", "sessions")
	assert.EqualError(t, err, "reading sessions: EOF")
	assert.True(t, Is(err, io.EOF))
}

func TestSentinel(t *testing.T) {
	errMissing := Sentinel(ErrNotFound, "missing thing")

	wrapped := Wrap(errMissing, "lookup")
	assert.True(t, Is(wrapped, errMissing))
	assert.True(t, Is(wrapped, ErrNotFound))
	assert.False(t, Is(wrapped, ErrValidation))
	assert.EqualError(t, wrapped, "lookup: missing thing")
}

func TestClassHelpers(t *testing.T) {
	err := Validation("bad number %q", "x")
	assert.True(t, Is(err, ErrValidation))
	assert.Contains(t, err.Error(), `bad number "x"`)

	err = Configuration("load config", io.ErrUnexpectedEOF)
	assert.True(t, Is(err, ErrConfiguration))
	assert.True(t, Is(err, io.ErrUnexpectedEOF))

	err = Configuration("no cause", nil)
	assert.EqualError(t, err, "configuration error: no cause")
}
