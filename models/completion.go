package models

import (
	"time"
)

// Completion status. pending→approved and pending→rejected are the only
// transitions; both end states are terminal.
const (
	CompletionPending  = "pending"
	CompletionApproved = "approved"
	CompletionRejected = "rejected"
)

// TileCompletion is one ledger entry: a player's screenshot-backed claim
// that their team finished a tile. The ledger is append-only and is the
// source of truth for scoring; Team.TotalPoints must equal the sum of
// approved PointsAwarded per team.
type TileCompletion struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	EventID          string    `json:"event_id" gorm:"not null;index"`
	TeamID           string    `json:"team_id" gorm:"not null;index"`
	TileID           int       `json:"tile_id" gorm:"not null"`
	PlayerName       string    `json:"player_name" gorm:"not null;index"`
	ScreenshotURL    string    `json:"screenshot_url"`
	Status           string    `json:"status" gorm:"default:'pending';index"`
	PointsAwarded    int       `json:"points_awarded"`
	UsedDoublePoints bool      `json:"used_double_points" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}
