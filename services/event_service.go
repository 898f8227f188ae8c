package services

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"clan-bingo-system/apperrors"
	"clan-bingo-system/models"
	"clan-bingo-system/utils"
)

// EventService owns the event lifecycle: board creation with its grid
// invariant, team setup, status transitions and lookups.
type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

// validateBoard checks the square-grid invariant: the tile count must be a
// perfect square matching the computed board size.
func validateBoard(tiles []models.Tile) (int, error) {
	n := len(tiles)
	if n == 0 {
		return 0, apperrors.Validationf("an event needs at least one tile")
	}
	size := models.BoardSize(n)
	if size*size != n {
		return 0, apperrors.Validationf("a %dx%d board requires exactly %d tiles, got %d", size, size, size*size, n)
	}
	return size, nil
}

// normalizeTiles re-indexes tiles row-major from 0 and fills defaults:
// difficulty medium, type derived from the mystery flag, mystery tiles
// start unrevealed and everything else starts revealed.
func normalizeTiles(tiles []models.Tile) []models.Tile {
	out := make([]models.Tile, len(tiles))
	for i, t := range tiles {
		t.ID = i
		if t.Difficulty == "" {
			t.Difficulty = models.DifficultyMedium
		}
		if t.Type == "" {
			if t.IsMystery {
				t.Type = models.TileTypeMystery
			} else {
				t.Type = models.TileTypeNormal
			}
		}
		t.Revealed = !t.IsMystery
		out[i] = t
	}
	return out
}

// uniqueSlug derives a URL slug from the event name, suffixing a short
// random fragment when the plain slug is taken.
func (s *EventService) uniqueSlug(name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "event"
	}
	var count int64
	s.DB.Model(&models.BingoEvent{}).Where("slug = ?", base).Count(&count)
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
}

type teamSetup struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateEvent creates the board and its teams in one transaction. Status
// starts upcoming when the start time is in the future, active otherwise.
func (s *EventService) CreateEvent(c *fiber.Ctx) error {
	var req struct {
		Name        string        `json:"name"`
		Description string        `json:"description"`
		Template    string        `json:"template"`
		Rules       string        `json:"rules"`
		StartTime   time.Time     `json:"start_time"`
		EndTime     time.Time     `json:"end_time"`
		Tiles       []models.Tile `json:"tiles"`
		Teams       []teamSetup   `json:"teams"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	if req.Name == "" {
		return utils.ErrorJSON(c, apperrors.Validationf("name is required"))
	}
	if req.StartTime.IsZero() {
		return utils.ErrorJSON(c, apperrors.Validationf("start_time is required"))
	}
	if !req.EndTime.IsZero() && !req.EndTime.After(req.StartTime) {
		return utils.ErrorJSON(c, apperrors.Validationf("end_time must be after start_time"))
	}
	if len(req.Teams) < 2 || len(req.Teams) > 8 {
		return utils.ErrorJSON(c, apperrors.Validationf("an event needs between 2 and 8 teams"))
	}
	if _, err := validateBoard(req.Tiles); err != nil {
		return utils.ErrorJSON(c, err)
	}

	status := models.EventStatusUpcoming
	if !req.StartTime.After(time.Now()) {
		status = models.EventStatusActive
	}
	if req.Template == "" {
		req.Template = "mixed"
	}

	event := models.BingoEvent{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        s.uniqueSlug(req.Name),
		Description: req.Description,
		Template:    req.Template,
		Rules:       req.Rules,
		Status:      status,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Tiles:       normalizeTiles(req.Tiles),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		for _, t := range req.Teams {
			team := models.Team{
				ID:             uuid.NewString(),
				EventID:        event.ID,
				Name:           t.Name,
				Color:          t.Color,
				Members:        []string{},
				CompletedTiles: []int{},
				Powerups:       models.DefaultPowerups(),
				BlockedTiles:   models.BlockedTileList{},
			}
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[Events] create failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to create event"})
	}

	log.Printf("✅ Event created: %s (%s, %d tiles, %d teams)", event.Name, event.ID, len(event.Tiles), len(req.Teams))
	return c.Status(201).JSON(event)
}

// GetEvents lists events, optionally filtered by status, newest start first.
func (s *EventService) GetEvents(c *fiber.Ctx) error {
	query := s.DB.Order("start_time DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var events []models.BingoEvent
	if err := query.Find(&events).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch events"})
	}
	return c.JSON(events)
}

// GetEvent fetches one event by id or slug.
func (s *EventService) GetEvent(c *fiber.Ctx) error {
	key := c.Params("id")

	var event models.BingoEvent
	err := s.DB.First(&event, "id = ? OR slug = ?", key, key).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("event %s not found", key))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch event"})
	}
	return c.JSON(event)
}

// UpdateEvent edits event metadata and, while the event is still upcoming,
// the board itself (re-validated against the grid invariant).
func (s *EventService) UpdateEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var req struct {
		Name        *string        `json:"name"`
		Description *string        `json:"description"`
		Rules       *string        `json:"rules"`
		StartTime   *time.Time     `json:"start_time"`
		EndTime     *time.Time     `json:"end_time"`
		Tiles       *[]models.Tile `json:"tiles"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var event models.BingoEvent
	err := s.DB.First(&event, "id = ?", eventID).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("event %s not found", eventID))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch event"})
	}

	if req.Name != nil && *req.Name != "" {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Rules != nil {
		event.Rules = *req.Rules
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Tiles != nil {
		if event.Status != models.EventStatusUpcoming {
			return utils.ErrorJSON(c, apperrors.Conflictf("the board can only be edited while the event is upcoming"))
		}
		if _, err := validateBoard(*req.Tiles); err != nil {
			return utils.ErrorJSON(c, err)
		}
		event.Tiles = normalizeTiles(*req.Tiles)
	}

	if err := s.DB.Save(&event).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update event"})
	}
	return c.JSON(event)
}

// validStatusTransition enforces the forward-only lifecycle.
func validStatusTransition(current, next string) error {
	order := map[string]int{
		models.EventStatusUpcoming:  0,
		models.EventStatusActive:    1,
		models.EventStatusCompleted: 2,
	}
	nextOrder, ok := order[next]
	if !ok {
		return apperrors.Validationf("unknown status %q", next)
	}
	if nextOrder < order[current] {
		return apperrors.Conflictf("cannot move event from %s back to %s", current, next)
	}
	return nil
}

// UpdateStatus moves the event through its lifecycle. Transitions only run
// forward; completed is terminal.
func (s *EventService) UpdateStatus(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var event models.BingoEvent
	err := s.DB.First(&event, "id = ?", eventID).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("event %s not found", eventID))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch event"})
	}

	if err := validStatusTransition(event.Status, req.Status); err != nil {
		return utils.ErrorJSON(c, err)
	}
	event.Status = req.Status
	if err := s.DB.Save(&event).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update status"})
	}

	log.Printf("[Events] %s → %s", event.Name, event.Status)
	return c.JSON(event)
}

// DeleteEvent removes the event and everything hanging off it.
func (s *EventService) DeleteEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.BingoEvent{}, "id = ?", eventID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFoundf("event %s not found", eventID)
		}
		for _, model := range []any{
			&models.Team{}, &models.TileCompletion{},
			&models.TeamMembership{}, &models.ChatMessage{}, &models.EventInvitation{},
		} {
			if err := tx.Where("event_id = ?", eventID).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Events] event %s deleted", eventID)
	return c.JSON(fiber.Map{"message": "event deleted"})
}
