package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"clan-bingo-system/models"
)

// Actor is the identity every core call runs as. It is built explicitly
// from request headers instead of ambient session state, so business logic
// never reads storage to figure out who is acting.
type Actor struct {
	Identifier  string
	DisplayName string
	IsAdmin     bool
}

const actorKey = "actor"

// ActorContext resolves the acting player from X-Player-ID and
// X-Display-Name. The admin flag comes from the player's profile row; an
// unknown identifier is still a valid (non-admin) actor, matching the
// no-login-wall model.
func ActorContext(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := Actor{
			Identifier:  c.Get("X-Player-ID"),
			DisplayName: c.Get("X-Display-Name"),
		}
		if actor.Identifier != "" {
			var profile models.Profile
			if err := db.Where("user_identifier = ?", actor.Identifier).First(&profile).Error; err == nil {
				actor.IsAdmin = profile.IsAdmin
				if actor.DisplayName == "" {
					actor.DisplayName = profile.Username
				}
			}
		}
		if actor.DisplayName == "" {
			actor.DisplayName = "Player"
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// ActorFrom returns the actor attached by ActorContext.
func ActorFrom(c *fiber.Ctx) Actor {
	if actor, ok := c.Locals(actorKey).(Actor); ok {
		return actor
	}
	return Actor{DisplayName: "Player"}
}

// RequireActor rejects requests that carry no player identifier.
func RequireActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ActorFrom(c).Identifier == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Player-ID header",
			})
		}
		return c.Next()
	}
}

// RequireAdmin rejects non-admin actors. Admin status lives on the profile
// row and is granted through the admin role endpoint.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFrom(c)
		if actor.Identifier == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Player-ID header",
			})
		}
		if !actor.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}
