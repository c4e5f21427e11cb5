package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "version %d", 0)

	assert.Equal(t, ErrCodeInvalidInput, err.Code)
	assert.Equal(t, "version 0", err.Message)
	assert.Equal(t, "INVALID_INPUT: version 0", err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrCodeEncodeFailed, cause, "encode %q", "hi")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Equal(t, `ENCODE_FAILED: encode "hi": boom`, err.Error())
}

func TestIsThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("render: %w", New(ErrCodeInternalInvariant, "shape id %d", 0))

	assert.True(t, Is(err, ErrCodeInternalInvariant))
	assert.False(t, Is(err, ErrCodeInvalidInput))
	assert.False(t, Is(errors.New("plain"), ErrCodeInvalidInput))
	assert.Equal(t, "shape id 0", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidParams, "x"), http.StatusBadRequest},
		{New(ErrCodeEncodeFailed, "x"), http.StatusUnprocessableEntity},
		{New(ErrCodeInternalInvariant, "x"), http.StatusInternalServerError},
		{errors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "%v", tt.err)
	}
}
