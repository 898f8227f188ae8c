package handlers

import (
	"clan-bingo-system/middleware"
	"clan-bingo-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSocialRoutes(app *fiber.App, profileService *services.ProfileService, chatService *services.ChatService, invitationService *services.InvitationService) {
	app.Get("/events/:id/chat", chatService.GetMessages)

	secured := app.Group("/", middleware.RequireActor())
	secured.Post("/profiles", profileService.CreateProfile)
	secured.Get("/profiles/me", profileService.GetMe)

	secured.Post("/events/:id/chat", chatService.PostMessage)

	secured.Post("/events/:id/invitations", invitationService.CreateInvitation)
	secured.Get("/invitations/pending", invitationService.ListPending)
	secured.Post("/invitations/:id/accept", invitationService.Accept)
	secured.Post("/invitations/:id/decline", invitationService.Decline)

	admin := app.Group("/", middleware.RequireAdmin())
	admin.Patch("/profiles/:id/admin", profileService.SetAdmin)
}
