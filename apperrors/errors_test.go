package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHTTPStatus_Mapping tests each error kind's response status
func TestHTTPStatus_Mapping(t *testing.T) {
	assert.Equal(t, 400, HTTPStatus(Validationf("missing player name")))
	assert.Equal(t, 409, HTTPStatus(Conflictf("tile already revealed")))
	assert.Equal(t, 404, HTTPStatus(NotFoundf("event %s not found", "e1")))
	assert.Equal(t, 500, HTTPStatus(errors.New("boom")))
}

// TestHTTPStatus_WrappedError tests errors.As through fmt wrapping
func TestHTTPStatus_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("applying powerup: %w", Conflictf("no uses remaining"))

	assert.Equal(t, 409, HTTPStatus(wrapped))
}

// TestValidationf_Message tests message formatting
func TestValidationf_Message(t *testing.T) {
	err := Validationf("a %dx%d board requires exactly %d tiles", 5, 5, 25)

	assert.Equal(t, "a 5x5 board requires exactly 25 tiles", err.Error())
}
