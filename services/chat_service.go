package services

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clan-bingo-system/apperrors"
	"clan-bingo-system/middleware"
	"clan-bingo-system/models"
	"clan-bingo-system/utils"
)

const maxChatMessageLen = 500

// ChatService handles the clan-wide and per-team chat channels. The
// powerup arbiter also writes system notices here so the activity feed can
// show blocks, reveals and steals.
type ChatService struct {
	DB *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{DB: db}
}

// PostMessage appends a chat message to the event's clan channel, or to a
// team channel when team_id is set.
func (s *ChatService) PostMessage(c *fiber.Ctx) error {
	eventID := c.Params("id")
	actor := middleware.ActorFrom(c)

	var req struct {
		TeamID  string `json:"team_id"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return utils.ErrorJSON(c, apperrors.Validationf("message is required"))
	}
	if len(req.Message) > maxChatMessageLen {
		return utils.ErrorJSON(c, apperrors.Validationf("message exceeds %d characters", maxChatMessageLen))
	}

	if req.TeamID != "" {
		var team models.Team
		err := s.DB.First(&team, "id = ? AND event_id = ?", req.TeamID, eventID).Error
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorJSON(c, apperrors.NotFoundf("team %s not found in event", req.TeamID))
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to fetch team"})
		}
	}

	message := models.ChatMessage{
		ID:               uuid.NewString(),
		EventID:          eventID,
		TeamID:           req.TeamID,
		SenderName:       actor.DisplayName,
		SenderIdentifier: actor.Identifier,
		Message:          req.Message,
		MessageType:      models.MessageTypeChat,
	}
	if err := s.DB.Create(&message).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to post message"})
	}
	return c.Status(201).JSON(message)
}

// GetMessages returns the latest messages in chronological order. Without
// team_id only the clan-wide channel (and system notices) is returned.
func (s *ChatService) GetMessages(c *fiber.Ctx) error {
	eventID := c.Params("id")
	teamID := c.Query("team_id")
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	query := s.DB.Where("event_id = ?", eventID)
	if teamID != "" {
		query = query.Where("team_id = ?", teamID)
	} else {
		query = query.Where("team_id = ''")
	}

	var messages []models.ChatMessage
	if err := query.Order("created_at DESC").Limit(limit).
		Find(&messages).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch messages"})
	}

	// Oldest first for rendering.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return c.JSON(messages)
}

// PowerupNotice records a system message about a powerup use inside the
// caller's transaction, so the notice appears only if the effect commits.
func (s *ChatService) PowerupNotice(tx *gorm.DB, eventID, teamName, text string) error {
	notice := models.ChatMessage{
		ID:          uuid.NewString(),
		EventID:     eventID,
		SenderName:  teamName,
		Message:     text,
		MessageType: models.MessageTypePowerup,
	}
	return tx.Create(&notice).Error
}
