package services

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clan-bingo-system/apperrors"
	"clan-bingo-system/middleware"
	"clan-bingo-system/models"
	"clan-bingo-system/utils"
)

// TeamService manages rosters and memberships. Joining is first-join-wins:
// a player binds to one team per event and only an admin can move them.
type TeamService struct {
	DB      *gorm.DB
	Scoring *ScoringService
}

func NewTeamService(db *gorm.DB, scoring *ScoringService) *TeamService {
	return &TeamService{DB: db, Scoring: scoring}
}

// GetTeams lists the event's teams in creation order, which is also the
// tie-break order for standings.
func (s *TeamService) GetTeams(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var teams []models.Team
	if err := s.DB.Where("event_id = ?", eventID).
		Order("created_at ASC").Find(&teams).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch teams"})
	}
	return c.JSON(teams)
}

// JoinTeam binds the acting player to a team. A second join attempt for the
// same event conflicts regardless of target team.
func (s *TeamService) JoinTeam(c *fiber.Ctx) error {
	eventID := c.Params("id")
	teamID := c.Params("team_id")
	actor := middleware.ActorFrom(c)

	var membership models.TeamMembership
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.TeamMembership
		err := tx.Where("event_id = ? AND user_identifier = ?", eventID, actor.Identifier).
			First(&existing).Error
		if err == nil {
			return apperrors.Conflictf("already joined a team for this event")
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		team, err := lockTeamForEvent(tx, teamID, eventID)
		if err != nil {
			return err
		}

		membership = models.TeamMembership{
			ID:             uuid.NewString(),
			EventID:        eventID,
			TeamID:         teamID,
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
		return nil
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Teams] %s joined team %s in event %s", actor.DisplayName, teamID, eventID)
	return c.Status(201).JSON(membership)
}

// GetMembership returns the acting player's membership for an event, or 404
// when they have not joined yet.
func (s *TeamService) GetMembership(c *fiber.Ctx) error {
	eventID := c.Params("id")
	actor := middleware.ActorFrom(c)

	var membership models.TeamMembership
	err := s.DB.Where("event_id = ? AND user_identifier = ?", eventID, actor.Identifier).
		First(&membership).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("no membership for this event"))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch membership"})
	}
	return c.JSON(membership)
}

// AssignPlayer moves or creates a membership for a named player. Admin
// reassignment is the only way around first-join-wins.
func (s *TeamService) AssignPlayer(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var req struct {
		TeamID         string `json:"team_id"`
		PlayerName     string `json:"player_name"`
		UserIdentifier string `json:"user_identifier"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerName == "" {
		return utils.ErrorJSON(c, apperrors.Validationf("player_name is required"))
	}
	if req.UserIdentifier == "" {
		// Players added by hand have no session of their own.
		req.UserIdentifier = req.PlayerName + "@manual"
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		team, err := lockTeamForEvent(tx, req.TeamID, eventID)
		if err != nil {
			return err
		}

		var existing models.TeamMembership
		err = tx.Where("event_id = ? AND user_identifier = ?", eventID, req.UserIdentifier).
			First(&existing).Error
		switch err {
		case nil:
			if existing.TeamID == req.TeamID {
				break
			}
			// Reassignment: pull the name off the old roster first.
			var oldTeam models.Team
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&oldTeam, "id = ?", existing.TeamID).Error; err == nil {
				kept := oldTeam.Members[:0]
				for _, m := range oldTeam.Members {
					if m != req.PlayerName {
						kept = append(kept, m)
					}
				}
				oldTeam.Members = kept
				if err := tx.Save(&oldTeam).Error; err != nil {
					return err
				}
			}
			existing.TeamID = req.TeamID
			existing.DisplayName = req.PlayerName
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			membership := models.TeamMembership{
				ID:             uuid.NewString(),
				EventID:        eventID,
				TeamID:         req.TeamID,
				UserIdentifier: req.UserIdentifier,
				DisplayName:    req.PlayerName,
			}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if !team.HasMember(req.PlayerName) {
			team.Members = append(team.Members, req.PlayerName)
			return tx.Save(team).Error
		}
		return nil
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Teams] admin assigned %q to team %s", req.PlayerName, req.TeamID)
	return c.JSON(fiber.Map{"message": "player assigned"})
}

// UpdateTeam edits team name and color.
func (s *TeamService) UpdateTeam(c *fiber.Ctx) error {
	teamID := c.Params("id")

	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var team models.Team
	err := s.DB.First(&team, "id = ?", teamID).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("team %s not found", teamID))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch team"})
	}

	if req.Name != nil && *req.Name != "" {
		team.Name = *req.Name
	}
	if req.Color != nil && *req.Color != "" {
		team.Color = *req.Color
	}
	if err := s.DB.Save(&team).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update team"})
	}
	return c.JSON(team)
}

// UpdatePowerups sets powerup counters outright (admin grants). Counts must
// be known kinds and non-negative.
func (s *TeamService) UpdatePowerups(c *fiber.Ctx) error {
	teamID := c.Params("id")

	var req struct {
		Powerups map[string]int `json:"powerups"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	known := map[string]bool{
		models.PowerupDoublePoints:    true,
		models.PowerupBlockTile:       true,
		models.PowerupRevealMystery:   true,
		models.PowerupStealCompletion: true,
	}
	for kind, count := range req.Powerups {
		if !known[kind] {
			return utils.ErrorJSON(c, apperrors.Validationf("unknown powerup kind %q", kind))
		}
		if count < 0 {
			return utils.ErrorJSON(c, apperrors.Validationf("powerup counts cannot be negative"))
		}
	}

	var team models.Team
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&team, "id = ?", teamID).Error
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf("team %s not found", teamID)
		}
		if err != nil {
			return err
		}
		if team.Powerups == nil {
			team.Powerups = map[string]int{}
		}
		for kind, count := range req.Powerups {
			team.Powerups[kind] = count
		}
		return tx.Save(&team).Error
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Teams] admin updated powerups for team %s", teamID)
	return c.JSON(team)
}

// ClearBlockedTile removes one block entry from a team, the admin escape
// hatch since blocks never expire on their own.
func (s *TeamService) ClearBlockedTile(c *fiber.Ctx) error {
	teamID := c.Params("id")
	tileID, err := strconv.Atoi(c.Params("tile_id"))
	if err != nil {
		return utils.ErrorJSON(c, apperrors.Validationf("tile_id must be an integer"))
	}

	var team models.Team
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&team, "id = ?", teamID).Error
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf("team %s not found", teamID)
		}
		if err != nil {
			return err
		}
		if !team.BlockedTiles.Contains(tileID) {
			return apperrors.NotFoundf("tile %d is not blocked for this team", tileID)
		}
		team.BlockedTiles = team.BlockedTiles.Remove(tileID)
		return tx.Save(&team).Error
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Teams] admin cleared block on tile %d for team %s", tileID, teamID)
	return c.JSON(team)
}
