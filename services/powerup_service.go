package services

import (
	"fmt"
	"log"
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

// PowerupService arbitrates the four consumable team effects. Every effect
// runs inside a single transaction: a constraint violation (zero counter,
// wrong tile state, self-targeting) rolls back with no state change, and a
// success consumes exactly one unit of the acting team's counter.
type PowerupService struct {
	DB      *gorm.DB
	Scoring *ScoringService
	Chat    *ChatService
}

func NewPowerupService(db *gorm.DB, scoring *ScoringService, chat *ChatService) *PowerupService {
	return &PowerupService{DB: db, Scoring: scoring, Chat: chat}
}

// validateSteal checks the source completion against the acting team. The
// source must be approved and must belong to another team.
func validateSteal(source *models.TileCompletion, actingTeamID string) error {
	if source.Status != models.CompletionApproved {
		return apperrors.Conflictf("only approved completions can be stolen")
	}
	if source.TeamID == actingTeamID {
		return apperrors.Conflictf("cannot steal your own team's completion")
	}
	return nil
}

// stolenCopy builds the acting team's pre-approved copy of a stolen
// completion. The source is never modified; points, tile and screenshot
// carry over and the thief is tagged in the player name.
func stolenCopy(source *models.TileCompletion, actingTeamID, playerName string) models.TileCompletion {
	return models.TileCompletion{
		ID:               uuid.NewString(),
		EventID:          source.EventID,
		TeamID:           actingTeamID,
		TileID:           source.TileID,
		PlayerName:       playerName + " (stolen)",
		ScreenshotURL:    source.ScreenshotURL,
		Status:           models.CompletionApproved,
		PointsAwarded:    source.PointsAwarded,
		UsedDoublePoints: false,
	}
}

// lockTeamForEvent loads a team under a row lock and verifies it belongs to
// the event the request targets.
func lockTeamForEvent(tx *gorm.DB, teamID, eventID string) (*models.Team, error) {
	var team models.Team
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&team, "id = ?", teamID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.NotFoundf("team %s not found", teamID)
	}
	if err != nil {
		return nil, err
	}
	if team.EventID != eventID {
		return nil, apperrors.Validationf("team %s does not belong to event %s", teamID, eventID)
	}
	return &team, nil
}

// BlockTile blocks one tile for a target team, colored by the acting team.
// Blocking the same tile twice is an idempotent append; the counter is
// consumed on every successful invocation.
func (s *PowerupService) BlockTile(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var req struct {
		TeamID       string `json:"team_id"`
		TargetTeamID string `json:"target_team_id"`
		TileID       int    `json:"tile_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var target *models.Team
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if req.TeamID == req.TargetTeamID {
			return apperrors.Conflictf("cannot block your own team's tile")
		}

		var event models.BingoEvent
		err := tx.First(&event, "id = ?", eventID).Error
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf("event %s not found", eventID)
		}
		if err != nil {
			return err
		}
		tile, ok := event.TileByID(req.TileID)
		if !ok {
			return apperrors.NotFoundf("tile %d not found in event", req.TileID)
		}

		acting, err := lockTeamForEvent(tx, req.TeamID, eventID)
		if err != nil {
			return err
		}
		target, err = lockTeamForEvent(tx, req.TargetTeamID, eventID)
		if err != nil {
			return err
		}

		if err := acting.ConsumePowerup(models.PowerupBlockTile, time.Now()); err != nil {
			return err
		}
		target.BlockedTiles = target.BlockedTiles.Add(req.TileID, acting.Color)

		if err := tx.Save(acting).Error; err != nil {
			return err
		}
		if err := tx.Save(target).Error; err != nil {
			return err
		}
		return s.Chat.PowerupNotice(tx, eventID, acting.Name,
			fmt.Sprintf("%s blocked \"%s\" for %s!", acting.Name, tile.Task, target.Name))
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Powerup] block_tile: team %s blocked tile %d for team %s", req.TeamID, req.TileID, req.TargetTeamID)
	return c.JSON(target)
}

// RevealMystery flips a mystery tile to revealed on the event board. The
// reveal is global: every team sees and may attempt the tile afterwards.
func (s *PowerupService) RevealMystery(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var req struct {
		TeamID string `json:"team_id"`
		TileID int    `json:"tile_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var revealed models.Tile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var event models.BingoEvent
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", eventID).Error
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf("event %s not found", eventID)
		}
		if err != nil {
			return err
		}

		tileIdx := -1
		for i, t := range event.Tiles {
			if t.ID == req.TileID {
				tileIdx = i
				break
			}
		}
		if tileIdx == -1 {
			return apperrors.NotFoundf("tile %d not found in event", req.TileID)
		}
		tile := event.Tiles[tileIdx]
		if !tile.IsMystery {
			return apperrors.Conflictf("tile %d is not a mystery tile", req.TileID)
		}
		if tile.Revealed {
			return apperrors.Conflictf("tile %d is already revealed", req.TileID)
		}

		team, err := lockTeamForEvent(tx, req.TeamID, eventID)
		if err != nil {
			return err
		}
		if err := team.ConsumePowerup(models.PowerupRevealMystery, time.Now()); err != nil {
			return err
		}

		event.Tiles[tileIdx].Revealed = true
		revealed = event.Tiles[tileIdx]

		if err := tx.Save(&event).Error; err != nil {
			return err
		}
		if err := tx.Save(team).Error; err != nil {
			return err
		}
		return s.Chat.PowerupNotice(tx, eventID, team.Name,
			fmt.Sprintf("%s revealed a mystery tile: \"%s\"", team.Name, revealed.Task))
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Powerup] reveal_mystery: team %s revealed tile %d in event %s", req.TeamID, req.TileID, eventID)
	return c.JSON(revealed)
}

// StealCompletion copies another team's approved completion onto the acting
// team, pre-approved and credited immediately. The source completion and
// its team's points are untouched.
func (s *PowerupService) StealCompletion(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var req struct {
		TeamID       string `json:"team_id"`
		CompletionID string `json:"completion_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	actor := middleware.ActorFrom(c)
	var copied models.TileCompletion
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var source models.TileCompletion
		err := tx.First(&source, "id = ? AND event_id = ?", req.CompletionID, eventID).Error
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf("completion %s not found", req.CompletionID)
		}
		if err != nil {
			return err
		}

		acting, err := lockTeamForEvent(tx, req.TeamID, eventID)
		if err != nil {
			return err
		}
		if err := validateSteal(&source, acting.ID); err != nil {
			return err
		}
		if err := acting.ConsumePowerup(models.PowerupStealCompletion, time.Now()); err != nil {
			return err
		}

		copied = stolenCopy(&source, acting.ID, actor.DisplayName)
		if err := tx.Create(&copied).Error; err != nil {
			return err
		}

		// The copy starts approved, so it is credited here rather than
		// through the admin review path.
		applyApproval(acting, &copied)
		if err := tx.Save(acting).Error; err != nil {
			return err
		}
		return s.Chat.PowerupNotice(tx, eventID, acting.Name,
			fmt.Sprintf("%s stole a completion worth %d points!", acting.Name, copied.PointsAwarded))
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	s.Scoring.InvalidateStandings(eventID)
	log.Printf("[Powerup] steal_completion: team %s copied completion %s (+%d pts)", req.TeamID, req.CompletionID, copied.PointsAwarded)
	return c.Status(201).JSON(copied)
}

// GetRevealableTiles lists the mystery tiles a team may reveal by
// proximity: unrevealed mysteries adjacent to one of the team's approved
// tiles.
func (s *PowerupService) GetRevealableTiles(c *fiber.Ctx) error {
	eventID := c.Params("id")
	teamID := c.Params("team_id")

	var event models.BingoEvent
	err := s.DB.First(&event, "id = ?", eventID).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("event %s not found", eventID))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch event"})
	}

	var approved []models.TileCompletion
	if err := s.DB.Where("event_id = ? AND team_id = ? AND status = ?",
		eventID, teamID, models.CompletionApproved).Find(&approved).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch completions"})
	}

	approvedIDs := make([]int, 0, len(approved))
	for _, completion := range approved {
		approvedIDs = append(approvedIDs, completion.TileID)
	}

	boardSize := models.BoardSize(len(event.Tiles))
	var revealable []models.Tile
	for _, tile := range event.Tiles {
		if models.CanRevealMystery(tile, approvedIDs, boardSize) {
			revealable = append(revealable, tile)
		}
	}
	return c.JSON(revealable)
}
