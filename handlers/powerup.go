package handlers

import (
	"clan-bingo-system/middleware"
	"clan-bingo-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPowerupRoutes(app *fiber.App, powerupService *services.PowerupService) {
	app.Get("/events/:id/teams/:team_id/revealable", powerupService.GetRevealableTiles)

	secured := app.Group("/", middleware.RequireActor())
	secured.Post("/events/:id/powerups/block", powerupService.BlockTile)
	secured.Post("/events/:id/powerups/reveal", powerupService.RevealMystery)
	secured.Post("/events/:id/powerups/steal", powerupService.StealCompletion)
}
