package handlers

import (
	"clan-bingo-system/middleware"
	"clan-bingo-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App, eventService *services.EventService, teamService *services.TeamService) {
	// Public reads
	app.Get("/events", eventService.GetEvents)
	app.Get("/events/:id", eventService.GetEvent)
	app.Get("/events/:id/teams", teamService.GetTeams)

	// Player actions
	secured := app.Group("/", middleware.RequireActor())
	secured.Post("/events/:id/teams/:team_id/join", teamService.JoinTeam)
	secured.Get("/events/:id/membership", teamService.GetMembership)

	// Admin-only event and team management
	admin := app.Group("/", middleware.RequireAdmin())
	admin.Post("/events", eventService.CreateEvent)
	admin.Put("/events/:id", eventService.UpdateEvent)
	admin.Patch("/events/:id/status", eventService.UpdateStatus)
	admin.Delete("/events/:id", eventService.DeleteEvent)

	admin.Post("/events/:id/teams/:team_id/assign", teamService.AssignPlayer)
	admin.Put("/teams/:id", teamService.UpdateTeam)
	admin.Patch("/teams/:id/powerups", teamService.UpdatePowerups)
	admin.Delete("/teams/:id/blocked-tiles/:tile_id", teamService.ClearBlockedTile)
}
