package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ServiceTokenMiddleware validates the shared Bearer token when the service
// runs behind a gateway. With CLAN_SERVICE_TOKEN unset the check is skipped
// and the service accepts direct traffic, which is the default deployment.
func ServiceTokenMiddleware() fiber.Handler {
	expectedToken := os.Getenv("CLAN_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Println("CLAN_SERVICE_TOKEN not set — accepting direct traffic")
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "service token missing",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != expectedToken {
			log.Printf("[GATEWAY] invalid service token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid service token",
			})
		}
		return c.Next()
	}
}
