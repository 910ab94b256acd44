package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesKindAndIdentity(t *testing.T) {
	errBusy := New(ErrConflict, "BUSY", "resource busy")
	wrapped := fmt.Errorf("failed to do thing: %w", errBusy)

	assert.True(t, errors.Is(wrapped, errBusy))
	assert.True(t, errors.Is(wrapped, ErrConflict))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, ErrConflict, Kind(wrapped))
	assert.Equal(t, "BUSY", Code(wrapped))
}

func TestTwoErrorsOfSameKindAreDistinct(t *testing.T) {
	a := New(ErrNotFound, "A_NOT_FOUND", "a not found")
	b := New(ErrNotFound, "B_NOT_FOUND", "b not found")

	assert.False(t, errors.Is(a, b))
	assert.True(t, errors.Is(b, ErrNotFound))
}

func TestStorage(t *testing.T) {
	driverErr := errors.New("connection reset")
	err := Storage("get attendance", driverErr)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, driverErr))
	assert.Contains(t, err.Error(), "get attendance")
	assert.Nil(t, Storage("noop", nil))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Nil(t, Kind(errors.New("boom")))
	assert.Equal(t, "", Code(errors.New("boom")))
}
