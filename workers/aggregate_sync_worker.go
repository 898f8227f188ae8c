package workers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"clan-bingo-system/models"
	"clan-bingo-system/services"
)

// AggregateSyncClient periodically rebuilds team point totals from the
// completion ledger. The ledger is authoritative; the cached aggregates on
// teams can drift when concurrent approvals race, and this worker bounds
// how long any drift survives.
type AggregateSyncClient struct {
	DB      *gorm.DB
	Scoring *services.ScoringService
}

func NewAggregateSyncClient(db *gorm.DB, scoring *services.ScoringService) *AggregateSyncClient {
	return &AggregateSyncClient{DB: db, Scoring: scoring}
}

// SyncOnce recomputes every team in active events and reports how many had
// drifted.
func (c *AggregateSyncClient) SyncOnce(ctx context.Context) (int, error) {
	var teams []models.Team
	err := c.DB.WithContext(ctx).
		Joins("JOIN bingo_events ON bingo_events.id = teams.event_id").
		Where("bingo_events.status = ?", models.EventStatusActive).
		Find(&teams).Error
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, team := range teams {
		teamID := team.ID
		eventID := team.EventID
		err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			drifted, err := c.Scoring.RecomputeFromLedger(tx, teamID)
			if err != nil {
				return err
			}
			if drifted {
				repaired++
				c.Scoring.InvalidateStandings(eventID)
				log.Printf("[AggregateSync] repaired drifted aggregates for team %s", teamID)
			}
			return nil
		})
		if err != nil {
			log.Printf("[AggregateSync] failed to sync team %s: %v", teamID, err)
		}
	}
	return repaired, nil
}

// PollAggregates runs SyncOnce on an interval until the context ends.
func PollAggregates(ctx context.Context, client *AggregateSyncClient, pollInterval time.Duration) {
	log.Println("Starting aggregate drift repair polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[AggregateSync] stopping")
			return
		case <-ticker.C:
			if _, err := client.SyncOnce(ctx); err != nil {
				log.Printf("[AggregateSync] sync pass failed: %v", err)
			}
		}
	}
}
