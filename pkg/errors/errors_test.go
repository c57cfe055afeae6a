package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrNotFound, "project not found"))

	got := FromError(wrapped)
	assert.Equal(t, ErrNotFound.Code, got.Code)
	assert.Equal(t, "project not found", got.Message)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("boom")

	got := FromError(cause)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, FromError(nil))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrInvalidTransition, "project already reviewed")

	assert.Equal(t, "project already reviewed", clone.Message)
	assert.Equal(t, "status transition not allowed", ErrInvalidTransition.Message)
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("review: %w", Clone(ErrInvalidTransition, "project already reviewed"))

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestAsKeepsKindAndCause(t *testing.T) {
	cause := errors.New("fk")

	got := As(cause, ErrValidation, "unknown category or technology")
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, CodeValidation, got.Code)
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, ErrNotFound.Message, As(cause, ErrNotFound, "").Message)
}
