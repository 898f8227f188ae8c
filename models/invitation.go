package models

import (
	"time"
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

// EventInvitation invites a player onto a specific team. Event and team
// names are denormalized so pending invitations render without extra reads.
type EventInvitation struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	EventID           string    `json:"event_id" gorm:"not null;index"`
	TeamID            string    `json:"team_id" gorm:"not null"`
	EventName         string    `json:"event_name"`
	TeamName          string    `json:"team_name"`
	InviterName       string    `json:"inviter_name"`
	InviterIdentifier string    `json:"inviter_identifier"`
	InviteeIdentifier string    `json:"invitee_identifier" gorm:"not null;index"`
	Status            string    `json:"status" gorm:"default:'pending'"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
