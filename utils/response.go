package utils

import (
	"github.com/gofiber/fiber/v2"

	"clan-bingo-system/apperrors"
)

// ErrorJSON writes a domain error with its mapped status code.
func ErrorJSON(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
