package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clan-bingo-system/apperrors"
	"clan-bingo-system/models"
	"clan-bingo-system/utils"
)

// ScoringService keeps team aggregates consistent with the completion
// ledger and serves derived standings and player stats. Cache may be nil;
// standings are then computed from Postgres on every read.
type ScoringService struct {
	DB    *gorm.DB
	Cache *redis.Client
}

func NewScoringService(db *gorm.DB, cache *redis.Client) *ScoringService {
	return &ScoringService{DB: db, Cache: cache}
}

const standingsCacheTTL = 10 * time.Second

func standingsCacheKey(eventID string) string {
	return "standings:" + eventID
}

// applyApproval credits an approved completion to its team: points add to
// the cached total and the tile joins completed_tiles. Exactly-once is the
// caller's job — the status guard in the completion transition ensures a
// completion is credited only when it moves out of pending.
func applyApproval(team *models.Team, completion *models.TileCompletion) {
	team.TotalPoints += completion.PointsAwarded
	for _, id := range team.CompletedTiles {
		if id == completion.TileID {
			return
		}
	}
	team.CompletedTiles = append(team.CompletedTiles, completion.TileID)
}

// CreditApproval loads the completion's team under a row lock, applies the
// credit and persists it, all inside the caller's transaction.
func (s *ScoringService) CreditApproval(tx *gorm.DB, completion *models.TileCompletion) error {
	var team models.Team
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&team, "id = ?", completion.TeamID).Error
	if err == gorm.ErrRecordNotFound {
		return apperrors.NotFoundf("team %s not found", completion.TeamID)
	}
	if err != nil {
		return err
	}
	applyApproval(&team, completion)
	return tx.Save(&team).Error
}

// sortStandings orders teams by total points, highest first. The sort is
// stable: teams on equal points keep their existing relative order.
func sortStandings(teams []models.Team) []models.Team {
	ranked := make([]models.Team, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalPoints > ranked[j].TotalPoints
	})
	return ranked
}

// InvalidateStandings drops the cached standings for an event. Called after
// every write that can move points.
func (s *ScoringService) InvalidateStandings(eventID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), standingsCacheKey(eventID)).Err(); err != nil {
		log.Printf("[Scoring] failed to invalidate standings cache for %s: %v", eventID, err)
	}
}

// GetStandings returns the event's teams ranked by points.
func (s *ScoringService) GetStandings(c *fiber.Ctx) error {
	eventID := c.Params("id")

	if s.Cache != nil {
		cached, err := s.Cache.Get(c.Context(), standingsCacheKey(eventID)).Bytes()
		if err == nil {
			var ranked []models.Team
			if json.Unmarshal(cached, &ranked) == nil {
				return c.JSON(ranked)
			}
		}
	}

	var teams []models.Team
	if err := s.DB.Where("event_id = ?", eventID).
		Order("created_at ASC").Find(&teams).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch teams"})
	}
	ranked := sortStandings(teams)

	if s.Cache != nil {
		if payload, err := json.Marshal(ranked); err == nil {
			s.Cache.Set(c.Context(), standingsCacheKey(eventID), payload, standingsCacheTTL)
		}
	}
	return c.JSON(ranked)
}

// RecomputeFromLedger rebuilds a team's cached aggregates from its approved
// completions. Returns whether anything had drifted.
func (s *ScoringService) RecomputeFromLedger(tx *gorm.DB, teamID string) (bool, error) {
	var team models.Team
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&team, "id = ?", teamID).Error
	if err == gorm.ErrRecordNotFound {
		return false, apperrors.NotFoundf("team %s not found", teamID)
	}
	if err != nil {
		return false, err
	}

	var completions []models.TileCompletion
	if err := tx.Where("team_id = ? AND status = ?", teamID, models.CompletionApproved).
		Order("created_at ASC").Find(&completions).Error; err != nil {
		return false, err
	}

	total := 0
	var tiles []int
	seen := map[int]bool{}
	for _, completion := range completions {
		total += completion.PointsAwarded
		if !seen[completion.TileID] {
			seen[completion.TileID] = true
			tiles = append(tiles, completion.TileID)
		}
	}

	if team.TotalPoints == total && len(team.CompletedTiles) == len(tiles) {
		return false, nil
	}
	team.TotalPoints = total
	team.CompletedTiles = tiles
	if err := tx.Save(&team).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ResetTeam zeroes one team's aggregates and deletes its ledger entries.
// Destructive and irreversible.
func (s *ScoringService) ResetTeam(c *fiber.Ctx) error {
	teamID := c.Params("id")

	var eventID string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&team, "id = ?", teamID).Error
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFoundf("team %s not found", teamID)
		}
		if err != nil {
			return err
		}
		eventID = team.EventID

		team.TotalPoints = 0
		team.CompletedTiles = []int{}
		if err := tx.Save(&team).Error; err != nil {
			return err
		}
		return tx.Where("team_id = ?", teamID).
			Delete(&models.TileCompletion{}).Error
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	s.InvalidateStandings(eventID)
	log.Printf("[Scoring] team %s reset", teamID)
	return c.JSON(fiber.Map{"message": "team reset"})
}

// ResetEvent zeroes every team in the event and deletes the event's entire
// ledger. Destructive and irreversible.
func (s *ScoringService) ResetEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var teams []models.Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", eventID).Find(&teams).Error; err != nil {
			return err
		}
		for i := range teams {
			teams[i].TotalPoints = 0
			teams[i].CompletedTiles = []int{}
			if err := tx.Save(&teams[i]).Error; err != nil {
				return err
			}
		}
		return tx.Where("event_id = ?", eventID).
			Delete(&models.TileCompletion{}).Error
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	s.InvalidateStandings(eventID)
	log.Printf("[Scoring] event %s leaderboard reset", eventID)
	return c.JSON(fiber.Map{"message": "leaderboard reset"})
}

// aggregatePlayerStats folds approved completions into per-player totals,
// preserving first-appearance order before ranking.
func aggregatePlayerStats(completions []models.TileCompletion) []models.PlayerStats {
	index := map[string]int{}
	events := map[string]map[string]bool{}
	var stats []models.PlayerStats

	for _, completion := range completions {
		name := completion.PlayerName
		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, models.PlayerStats{Name: name})
			events[name] = map[string]bool{}
		}
		stats[i].Points += completion.PointsAwarded
		stats[i].Tiles++
		events[name][completion.EventID] = true
	}

	for i := range stats {
		stats[i].Events = len(events[stats[i].Name])
		stats[i].Badges = models.BadgesFor(stats[i].Points, stats[i].Tiles, stats[i].Events)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Points > stats[j].Points
	})
	return stats
}

// GetPlayerStats aggregates every approved completion across all events
// into per-player totals and badges.
func (s *ScoringService) GetPlayerStats(c *fiber.Ctx) error {
	var completions []models.TileCompletion
	if err := s.DB.Where("status = ?", models.CompletionApproved).
		Order("created_at ASC").Find(&completions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch completions"})
	}
	return c.JSON(aggregatePlayerStats(completions))
}

// ResetPlayer deletes all of one player's completions and repairs the
// aggregates of every team they had scored for.
func (s *ScoringService) ResetPlayer(c *fiber.Ctx) error {
	playerName := c.Params("name")

	affected := map[string]string{} // team id → event id
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var completions []models.TileCompletion
		if err := tx.Where("player_name = ?", playerName).
			Find(&completions).Error; err != nil {
			return err
		}
		if len(completions) == 0 {
			return apperrors.NotFoundf("no completions for player %q", playerName)
		}
		for _, completion := range completions {
			affected[completion.TeamID] = completion.EventID
		}
		if err := tx.Where("player_name = ?", playerName).
			Delete(&models.TileCompletion{}).Error; err != nil {
			return err
		}
		for teamID := range affected {
			if _, err := s.RecomputeFromLedger(tx, teamID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	for _, eventID := range affected {
		s.InvalidateStandings(eventID)
	}
	log.Printf("[Scoring] player %q reset across %d teams", playerName, len(affected))
	return c.JSON(fiber.Map{"message": "player stats reset"})
}
