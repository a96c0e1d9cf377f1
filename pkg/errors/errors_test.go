package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := errors.New("disk gone")
	err := Wrap("load_error", "open knowledge base", cause)

	require.True(t, IsCode(err, "load_error"))
	require.False(t, IsCode(err, "llm_error"))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "open knowledge base: disk gone", err.Error())
}

func TestCodeOf(t *testing.T) {
	err := Wrap("invalid_input", "message cannot be empty", nil)
	require.Equal(t, "invalid_input", CodeOf(err))

	wrapped := fmt.Errorf("handler: %w", err)
	require.Equal(t, "invalid_input", CodeOf(wrapped))

	require.Empty(t, CodeOf(errors.New("plain")))
	require.Empty(t, CodeOf(nil))
}
