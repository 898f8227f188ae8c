package services

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clan-bingo-system/apperrors"
	"clan-bingo-system/middleware"
	"clan-bingo-system/models"
	"clan-bingo-system/utils"
)

// InvitationService lets team members pull specific players onto their
// team. Accepting an invitation creates the membership directly, the same
// first-join-wins binding as joining by hand.
type InvitationService struct {
	DB *gorm.DB
}

func NewInvitationService(db *gorm.DB) *InvitationService {
	return &InvitationService{DB: db}
}

// CreateInvitation invites an identifier onto a team. Event and team names
// are denormalized onto the invitation for rendering.
func (s *InvitationService) CreateInvitation(c *fiber.Ctx) error {
	eventID := c.Params("id")
	actor := middleware.ActorFrom(c)

	var req struct {
		TeamID            string `json:"team_id"`
		InviteeIdentifier string `json:"invitee_identifier"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.InviteeIdentifier = strings.ToLower(strings.TrimSpace(req.InviteeIdentifier))
	if req.InviteeIdentifier == "" {
		return utils.ErrorJSON(c, apperrors.Validationf("invitee_identifier is required"))
	}

	var event models.BingoEvent
	err := s.DB.First(&event, "id = ?", eventID).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("event %s not found", eventID))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch event"})
	}

	var team models.Team
	err = s.DB.First(&team, "id = ? AND event_id = ?", req.TeamID, eventID).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("team %s not found in event", req.TeamID))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch team"})
	}

	invitation := models.EventInvitation{
		ID:                uuid.NewString(),
		EventID:           eventID,
		TeamID:            team.ID,
		EventName:         event.Name,
		TeamName:          team.Name,
		InviterName:       actor.DisplayName,
		InviterIdentifier: actor.Identifier,
		InviteeIdentifier: req.InviteeIdentifier,
		Status:            models.InvitationPending,
	}
	if err := s.DB.Create(&invitation).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to create invitation"})
	}

	log.Printf("[Invitations] %s invited %s to team %q", actor.DisplayName, req.InviteeIdentifier, team.Name)
	return c.Status(201).JSON(invitation)
}

// ListPending returns the acting player's open invitations.
func (s *InvitationService) ListPending(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)

	var invitations []models.EventInvitation
	err := s.DB.Where("invitee_identifier = ? AND status = ?",
		strings.ToLower(actor.Identifier), models.InvitationPending).
		Order("created_at DESC").Find(&invitations).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch invitations"})
	}
	return c.JSON(invitations)
}

// respond resolves a pending invitation for the acting player.
func (s *InvitationService) respond(c *fiber.Ctx, accept bool) error {
	invitationID := c.Params("id")
	actor := middleware.ActorFrom(c)

	var invitation models.EventInvitation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&invitation, "id = ?", invitationID).Error
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf("invitation %s not found", invitationID)
		}
		if err != nil {
			return err
		}
		if !strings.EqualFold(invitation.InviteeIdentifier, actor.Identifier) {
			return apperrors.Conflictf("invitation belongs to another player")
		}
		if invitation.Status != models.InvitationPending {
			return apperrors.Conflictf("invitation is already %s", invitation.Status)
		}

		if !accept {
			invitation.Status = models.InvitationDeclined
			return tx.Save(&invitation).Error
		}

		var existing models.TeamMembership
		err = tx.Where("event_id = ? AND user_identifier = ?",
			invitation.EventID, actor.Identifier).First(&existing).Error
		if err == nil {
			return apperrors.Conflictf("already joined a team for this event")
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		team, err := lockTeamForEvent(tx, invitation.TeamID, invitation.EventID)
		if err != nil {
			return err
		}
		membership := models.TeamMembership{
			ID:             uuid.NewString(),
			EventID:        invitation.EventID,
			TeamID:         invitation.TeamID,
			UserIdentifier: actor.Identifier,
			DisplayName:    actor.DisplayName,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		if !team.HasMember(actor.DisplayName) {
			team.Members = append(team.Members, actor.DisplayName)
			if err := tx.Save(team).Error; err != nil {
				return err
			}
		}
		invitation.Status = models.InvitationAccepted
		return tx.Save(&invitation).Error
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}
	return c.JSON(invitation)
}

// Accept joins the acting player onto the invited team.
func (s *InvitationService) Accept(c *fiber.Ctx) error {
	return s.respond(c, true)
}

// Decline closes the invitation without joining.
func (s *InvitationService) Decline(c *fiber.Ctx) error {
	return s.respond(c, false)
}
