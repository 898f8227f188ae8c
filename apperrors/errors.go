// Package apperrors defines the error kinds the service reports to callers
// and their HTTP status mapping. Handlers never retry; every action is
// independently retriable from the client.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ValidationError covers malformed or incomplete input (missing player name,
// missing screenshot, wrong board tile count).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StateConflict covers rule violations against current state (zero powerup
// count, tile not mystery or already revealed, self-steal, self-block,
// terminal completion status).
type StateConflict struct {
	Msg string
}

func (e *StateConflict) Error() string { return e.Msg }

// NotFound covers unknown event, team, tile or completion ids.
type NotFound struct {
	Msg string
}

func (e *NotFound) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &StateConflict{Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &NotFound{Msg: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps a domain error onto its response status. Unknown errors
// are treated as internal.
func HTTPStatus(err error) int {
	var validation *ValidationError
	var conflict *StateConflict
	var notFound *NotFound
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &conflict):
		return fiber.StatusConflict
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
