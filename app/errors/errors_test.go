package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsThroughFmtErrorf(t *testing.T) {
	base := New(PaymentFailed, "card declined")
	wrapped := fmt.Errorf("checkout: %w", base)

	assert.Equal(t, PaymentFailed, KindOf(wrapped))
	assert.True(t, Is(wrapped, PaymentFailed))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(StoreUnavailable, "could not load cart", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store_unavailable")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestUserMessageMasksInconsistent(t *testing.T) {
	err := Wrap(Inconsistent, "order persistence failed after charge ch_123", errors.New("disk full"))

	msg := UserMessage(err)
	assert.NotContains(t, msg, "ch_123")
	assert.NotContains(t, msg, "disk full")
	assert.NotEmpty(t, msg)

	assert.Equal(t, "Your cart is empty", UserMessage(New(ValidationFailed, "Your cart is empty")))
	assert.Equal(t, "Something went wrong", UserMessage(errors.New("nil kind")))
}
