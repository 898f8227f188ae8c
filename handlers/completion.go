package handlers

import (
	"clan-bingo-system/middleware"
	"clan-bingo-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCompletionRoutes(app *fiber.App, completionService *services.CompletionService) {
	app.Get("/events/:id/completions", completionService.ListByEvent)
	app.Get("/events/:id/feed", completionService.GetFeed)

	secured := app.Group("/", middleware.RequireActor())
	secured.Post("/events/:id/completions", completionService.Submit)

	admin := app.Group("/", middleware.RequireAdmin())
	admin.Patch("/completions/:id/status", completionService.UpdateStatus)
}
