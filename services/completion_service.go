package services

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clan-bingo-system/apperrors"
	"clan-bingo-system/middleware"
	"clan-bingo-system/models"
	"clan-bingo-system/utils"
)

// CompletionService records tile submissions and moves them through admin
// review. The ledger it writes is the source of truth for all scoring.
type CompletionService struct {
	DB      *gorm.DB
	Scoring *ScoringService
}

func NewCompletionService(db *gorm.DB, scoring *ScoringService) *CompletionService {
	return &CompletionService{DB: db, Scoring: scoring}
}

// awardedPoints is the submission-time point calculation. Double points are
// locked in when submitting, not at approval.
func awardedPoints(tilePoints int, useDouble bool) int {
	if useDouble {
		return tilePoints * 2
	}
	return tilePoints
}

// transitionStatus validates a status change for a completion. credit
// reports whether the scoring engine must be invoked; changed is false for
// an idempotent repeat of the current status.
func transitionStatus(current, next string) (credit bool, changed bool, err error) {
	if next != models.CompletionApproved && next != models.CompletionRejected {
		return false, false, apperrors.Validationf("status must be %q or %q", models.CompletionApproved, models.CompletionRejected)
	}
	if current == next {
		return false, false, nil
	}
	if current != models.CompletionPending {
		return false, false, apperrors.Conflictf("completion is already %s", current)
	}
	return next == models.CompletionApproved, true, nil
}

// Submit records a pending completion for a tile. The screenshot arrives as
// a multipart file (uploaded to R2) or a pre-uploaded URL. Using the
// double-points powerup consumes it here, whether or not the submission is
// later approved — a rejected submission does not refund the powerup.
func (s *CompletionService) Submit(c *fiber.Ctx) error {
	eventID := c.Params("id")
	actor := middleware.ActorFrom(c)

	teamID := c.FormValue("team_id")
	playerName := strings.TrimSpace(c.FormValue("player_name"))
	if playerName == "" && actor.Identifier != "" {
		playerName = actor.DisplayName
	}
	useDouble := strings.EqualFold(c.FormValue("use_double_points"), "true")
	screenshotURL := c.FormValue("screenshot_url")

	if teamID == "" {
		return utils.ErrorJSON(c, apperrors.Validationf("team_id is required, select a team first"))
	}
	if playerName == "" {
		return utils.ErrorJSON(c, apperrors.Validationf("player_name is required"))
	}
	tileID, err := strconv.Atoi(c.FormValue("tile_id"))
	if err != nil {
		return utils.ErrorJSON(c, apperrors.Validationf("tile_id must be an integer"))
	}

	var event models.BingoEvent
	dbErr := s.DB.First(&event, "id = ?", eventID).Error
	if dbErr == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("event %s not found", eventID))
	}
	if dbErr != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch event"})
	}
	if event.Status != models.EventStatusActive {
		return utils.ErrorJSON(c, apperrors.Conflictf("event is %s, submissions are only accepted while it is active", event.Status))
	}

	tile, ok := event.TileByID(tileID)
	if !ok {
		return utils.ErrorJSON(c, apperrors.NotFoundf("tile %d not found in event", tileID))
	}
	if tile.IsMystery && !tile.Revealed {
		return utils.ErrorJSON(c, apperrors.Conflictf("mystery tile %d has not been revealed yet", tileID))
	}

	// Screenshot proof is mandatory, either as an upload or a URL.
	if file, ferr := c.FormFile("screenshot"); ferr == nil && file.Size > 0 {
		ext := filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".png"
		}
		key := fmt.Sprintf("screenshots/%s/%s%s", eventID, uuid.NewString(), ext)
		url, uerr := utils.UploadScreenshot(file, key)
		if uerr != nil {
			log.Printf("[Completions] screenshot upload failed: %v", uerr)
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload screenshot"})
		}
		screenshotURL = url
	}
	if screenshotURL == "" {
		return utils.ErrorJSON(c, apperrors.Validationf("screenshot is required"))
	}

	completion := models.TileCompletion{
		ID:               uuid.NewString(),
		EventID:          eventID,
		TeamID:           teamID,
		TileID:           tileID,
		PlayerName:       playerName,
		ScreenshotURL:    screenshotURL,
		Status:           models.CompletionPending,
		PointsAwarded:    awardedPoints(tile.Points, useDouble),
		UsedDoublePoints: useDouble,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		team, err := lockTeamForEvent(tx, teamID, eventID)
		if err != nil {
			return err
		}
		if team.BlockedTiles.Contains(tileID) {
			return apperrors.Conflictf("tile %d is blocked for team %s", tileID, team.Name)
		}
		if useDouble {
			if err := team.ConsumePowerup(models.PowerupDoublePoints, time.Now()); err != nil {
				return err
			}
			if err := tx.Save(team).Error; err != nil {
				return err
			}
		}
		return tx.Create(&completion).Error
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Completions] %s submitted tile %d for team %s (%d pts, double=%t)",
		playerName, tileID, teamID, completion.PointsAwarded, useDouble)
	return c.Status(201).JSON(completion)
}

// UpdateStatus moves a pending completion to approved or rejected. Approval
// credits the team exactly once; repeating the current status is a no-op,
// and leaving a terminal status is a conflict.
func (s *CompletionService) UpdateStatus(c *fiber.Ctx) error {
	completionID := c.Params("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var completion models.TileCompletion
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&completion, "id = ?", completionID).Error
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf("completion %s not found", completionID)
		}
		if err != nil {
			return err
		}

		credit, changed, err := transitionStatus(completion.Status, req.Status)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		completion.Status = req.Status
		if err := tx.Model(&completion).Update("status", req.Status).Error; err != nil {
			return err
		}
		if credit {
			return s.Scoring.CreditApproval(tx, &completion)
		}
		return nil
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	s.Scoring.InvalidateStandings(completion.EventID)
	log.Printf("[Completions] completion %s → %s", completionID, completion.Status)
	return c.JSON(completion)
}

// ListByEvent returns the event's ledger, newest first, optionally filtered
// by team, player or status. This is the pull-based snapshot clients poll.
func (s *CompletionService) ListByEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")

	query := s.DB.Where("event_id = ?", eventID)
	if teamID := c.Query("team_id"); teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}
	if player := c.Query("player"); player != "" {
		query = query.Where("player_name = ?", player)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var completions []models.TileCompletion
	if err := query.Order("created_at DESC").Find(&completions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch completions"})
	}
	return c.JSON(completions)
}

// GetFeed merges recent approved completions and powerup notices into the
// event activity feed.
func (s *CompletionService) GetFeed(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var completions []models.TileCompletion
	if err := s.DB.Where("event_id = ? AND status = ?", eventID, models.CompletionApproved).
		Order("created_at DESC").Limit(30).Find(&completions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch completions"})
	}

	var notices []models.ChatMessage
	if err := s.DB.Where("event_id = ? AND message_type = ?", eventID, models.MessageTypePowerup).
		Order("created_at DESC").Limit(20).Find(&notices).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch notices"})
	}

	return c.JSON(fiber.Map{
		"completions": completions,
		"notices":     notices,
	})
}
