package models

import (
	"time"
)

// Event lifecycle. Transitions run forward only; "completed" is terminal.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
)

// Tile difficulty tiers, in ascending order of grind.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyElite  = "elite"
	DifficultyMaster = "master"
)

// Tile kinds.
const (
	TileTypeNormal       = "normal"
	TileTypeDoublePoints = "double_points"
	TileTypeMystery      = "mystery"
	TileTypeBoss         = "boss"
)

// Tile is one cell of the bingo grid. ID doubles as the tile's position:
// row = ID / boardSize, col = ID % boardSize, row-major from the top left.
type Tile struct {
	ID         int    `json:"id"`
	Task       string `json:"task"`
	Points     int    `json:"points"`
	Difficulty string `json:"difficulty"`
	Type       string `json:"type"`
	IsMystery  bool   `json:"is_mystery"`
	Revealed   bool   `json:"revealed"`
}

// BingoEvent is a clan event: a square grid of task tiles competed over by
// teams between StartTime and EndTime. Tiles are embedded in the event row,
// not a separate table, so the board always reads as one snapshot.
type BingoEvent struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Template    string    `json:"template" gorm:"default:'mixed'"`
	Rules       string    `json:"rules" gorm:"type:text"`
	Status      string    `json:"status" gorm:"default:'upcoming';index"`
	StartTime   time.Time `json:"start_time" gorm:"not null"`
	EndTime     time.Time `json:"end_time"`
	Tiles       []Tile    `json:"tiles" gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TileByID returns the embedded tile with the given grid index.
func (e *BingoEvent) TileByID(tileID int) (Tile, bool) {
	for _, t := range e.Tiles {
		if t.ID == tileID {
			return t, true
		}
	}
	return Tile{}, false
}
