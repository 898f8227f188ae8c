package models

import (
	"time"
)

// Chat message kinds. Powerup notices are written by the arbiter so the
// activity feed can show blocks, reveals and steals alongside player chat.
const (
	MessageTypeChat    = "chat"
	MessageTypePowerup = "powerup"
	MessageTypeSystem  = "system"
)

// ChatMessage belongs to the clan-wide channel when TeamID is empty, or to
// a team channel otherwise.
type ChatMessage struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	EventID          string    `json:"event_id" gorm:"not null;index"`
	TeamID           string    `json:"team_id" gorm:"index"`
	SenderName       string    `json:"sender_name"`
	SenderIdentifier string    `json:"sender_identifier"`
	Message          string    `json:"message" gorm:"type:text;not null"`
	MessageType      string    `json:"message_type" gorm:"default:'chat'"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
