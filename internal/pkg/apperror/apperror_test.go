package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAs_UnwrapsWrappedError(t *testing.T) {
	sentinel := New(KindPrecondition, "ALREADY_FIXED", "month already fixed")
	wrapped := fmt.Errorf("reject month: %w", sentinel)

	got, ok := As(wrapped)

	assert.True(t, ok)
	assert.Same(t, sentinel, got)
	assert.True(t, errors.Is(wrapped, sentinel))
	assert.Equal(t, "ALREADY_FIXED", CodeOf(wrapped))
}

func TestCodeOf_PlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("connection reset")))
}

func TestSentinelsWithSameCodeAreDistinct(t *testing.T) {
	a := New(KindPrecondition, "ALREADY_CLOCKED_IN", "already clocked in")
	b := New(KindPrecondition, "ALREADY_CLOCKED_IN", "already clocked out")

	assert.False(t, errors.Is(a, b))
	assert.Equal(t, CodeOf(a), CodeOf(b))
}
