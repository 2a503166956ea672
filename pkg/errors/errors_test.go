package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, KindTransport, "TRANSPORT_FAILURE", 0, "network error")

	assert.Equal(t, "network error: dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestFromError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FromError(nil))
	})

	t.Run("typed passthrough", func(t *testing.T) {
		typed := New(KindRejected, "CONFLICT", http.StatusConflict, "email already exists")
		assert.Same(t, typed, FromError(typed))
	})

	t.Run("wrapped typed", func(t *testing.T) {
		typed := Clone(ErrNotFound, "user not found")
		wrapped := fmt.Errorf("loading: %w", typed)
		assert.Same(t, typed, FromError(wrapped))
	})

	t.Run("untyped becomes internal", func(t *testing.T) {
		got := FromError(errors.New("boom"))
		require.NotNil(t, got)
		assert.Equal(t, ErrInternal.Code, got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.Status)
	})
}

func TestCloneOverridesMessageOnly(t *testing.T) {
	clone := Clone(ErrValidation, "invalid role")

	assert.Equal(t, "invalid role", clone.Message)
	assert.Equal(t, ErrValidation.Code, clone.Code)
	assert.Equal(t, ErrValidation.Status, clone.Status)
	assert.Equal(t, "validation failed", ErrValidation.Message, "original untouched")

	same := Clone(ErrValidation, "")
	assert.Equal(t, "validation failed", same.Message)
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(Clone(ErrValidation, "")))
	assert.True(t, IsTransport(ErrTransport))
	assert.Equal(t, KindRejected, KindOf(errors.New("boom")))
	assert.Equal(t, KindRejected, KindOf(ErrConflict))
}
