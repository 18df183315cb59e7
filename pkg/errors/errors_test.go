package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorMessageFormatting(t *testing.T) {
	base := New("DB_DOWN", "Database unavailable", http.StatusServiceUnavailable)
	require.Equal(t, "Database unavailable", base.Error())

	wrapped := base.WithInternal(errors.New("dial tcp: refused"))
	require.Equal(t, "Database unavailable: dial tcp: refused", wrapped.Error())
	require.NotSame(t, base, wrapped)
	require.Nil(t, base.Internal)
}

func TestFromErrorUnwrapsAppErrors(t *testing.T) {
	inner := NewBadRequest("email is required")
	err := FromError(inner)
	require.Equal(t, inner, err)

	generic := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, generic.Code)
	require.EqualError(t, generic.Internal, "boom")

	require.Nil(t, FromError(nil))
}

func TestWrapKeepsOriginalForLogging(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, "Failed to persist message")

	require.Equal(t, http.StatusInternalServerError, err.StatusCode)
	require.True(t, errors.Is(err, cause))
}
