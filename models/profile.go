package models

import (
	"time"
)

// Profile is a lightweight player identity. There is no login wall; the
// client presents its identifier on every request and the profile row only
// adds a display name and the admin flag.
type Profile struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	UserIdentifier string    `json:"user_identifier" gorm:"uniqueIndex;not null"`
	IsAdmin        bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
