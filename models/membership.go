package models

import (
	"time"
)

// TeamMembership binds a player identity to exactly one team per event.
// First join wins; only an admin reassignment may move it afterwards.
type TeamMembership struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	EventID        string    `json:"event_id" gorm:"not null;index:idx_membership_event_user,priority:1"`
	TeamID         string    `json:"team_id" gorm:"not null;index"`
	UserIdentifier string    `json:"user_identifier" gorm:"not null;index:idx_membership_event_user,priority:2"`
	DisplayName    string    `json:"display_name"`
	JoinedAt       time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
