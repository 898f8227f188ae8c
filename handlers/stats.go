package handlers

import (
	"clan-bingo-system/middleware"
	"clan-bingo-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App, scoringService *services.ScoringService) {
	app.Get("/events/:id/standings", scoringService.GetStandings)
	app.Get("/players/stats", scoringService.GetPlayerStats)

	admin := app.Group("/", middleware.RequireAdmin())
	admin.Post("/events/:id/reset", scoringService.ResetEvent)
	admin.Post("/teams/:id/reset", scoringService.ResetTeam)
	admin.Delete("/players/:name/completions", scoringService.ResetPlayer)
}
