package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeValidation, "contactEmail must be a valid email address")
	assert.True(t, HasCode(err, CodeValidation))
	assert.False(t, HasCode(err, CodeConflict))

	wrapped := fmt.Errorf("register: %w", err)
	assert.True(t, HasCode(wrapped, CodeValidation), "HasCode must see through wrapping")

	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "account creation failed")

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "account creation failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "companyName is required", Message(New(CodeValidation, "companyName is required")))
	// Uncoded causes never leak their text to callers.
	assert.Equal(t, "internal error", Message(errors.New("pq: relation missing")))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: New(CodeValidation, "bad"), want: http.StatusBadRequest},
		{err: New(CodeConflict, "dup"), want: http.StatusBadRequest},
		{err: New(CodeNotFound, "missing"), want: http.StatusNotFound},
		{err: New(CodeTimeout, "slow"), want: http.StatusGatewayTimeout},
		{err: New(CodeInternal, "boom"), want: http.StatusInternalServerError},
		{err: errors.New("plain"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.err))
	}
}
