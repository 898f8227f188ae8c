package models

import (
	"encoding/json"
	"time"

	"clan-bingo-system/apperrors"
)

// Powerup kinds. Each team carries a consumable counter per kind.
const (
	PowerupDoublePoints    = "double_points"
	PowerupBlockTile       = "block_tile"
	PowerupRevealMystery   = "reveal_mystery"
	PowerupStealCompletion = "steal_completion"
)

// DefaultPowerups is the loadout every team starts an event with.
func DefaultPowerups() map[string]int {
	return map[string]int{
		PowerupDoublePoints:    2,
		PowerupBlockTile:       1,
		PowerupRevealMystery:   1,
		PowerupStealCompletion: 1,
	}
}

// BlockedTile marks a tile another team has blocked, colored by the blocker.
type BlockedTile struct {
	TileID       int    `json:"tile_id"`
	BlockerColor string `json:"blocker_color,omitempty"`
}

// UnmarshalJSON accepts both the current object shape and the legacy bare
// tile id that older team rows still carry, normalizing to the object shape
// on read.
func (b *BlockedTile) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		*b = BlockedTile{TileID: id}
		return nil
	}
	type plain BlockedTile
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = BlockedTile(obj)
	return nil
}

type BlockedTileList []BlockedTile

// Contains reports whether the list already holds an entry for tileID,
// regardless of which shape it was stored in.
func (l BlockedTileList) Contains(tileID int) bool {
	for _, b := range l {
		if b.TileID == tileID {
			return true
		}
	}
	return false
}

// Add appends a block entry unless one already exists for the tile. The
// append is idempotent: blocking the same tile twice leaves one entry.
func (l BlockedTileList) Add(tileID int, blockerColor string) BlockedTileList {
	if l.Contains(tileID) {
		return l
	}
	return append(l, BlockedTile{TileID: tileID, BlockerColor: blockerColor})
}

// Remove drops the entry for tileID, if present.
func (l BlockedTileList) Remove(tileID int) BlockedTileList {
	out := l[:0]
	for _, b := range l {
		if b.TileID != tileID {
			out = append(out, b)
		}
	}
	return out
}

// Team competes in exactly one event. TotalPoints and CompletedTiles are
// cached aggregates; the completion ledger is the source of truth and
// ScoringService.RecomputeFromLedger repairs drift.
type Team struct {
	ID               string               `json:"id" gorm:"primaryKey"`
	EventID          string               `json:"event_id" gorm:"not null;index"`
	Name             string               `json:"name" gorm:"not null"`
	Color            string               `json:"color"`
	Members          []string             `json:"members" gorm:"serializer:json;type:jsonb"`
	TotalPoints      int                  `json:"total_points" gorm:"default:0"`
	CompletedTiles   []int                `json:"completed_tiles" gorm:"serializer:json;type:jsonb"`
	Powerups         map[string]int       `json:"powerups" gorm:"serializer:json;type:jsonb"`
	PowerupCooldowns map[string]time.Time `json:"powerup_cooldowns" gorm:"serializer:json;type:jsonb"`
	BlockedTiles     BlockedTileList      `json:"blocked_tiles" gorm:"serializer:json;type:jsonb"`
	CreatedAt        time.Time            `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time            `json:"updated_at" gorm:"autoUpdateTime"`
}

// PowerupCount returns the remaining uses of kind, never negative.
func (t *Team) PowerupCount(kind string) int {
	n := t.Powerups[kind]
	if n < 0 {
		return 0
	}
	return n
}

// ConsumePowerup spends one use of kind and records when it was spent. It
// fails without mutating anything when no uses remain. The cooldown
// timestamp is informational only; no gameplay rule reads it.
func (t *Team) ConsumePowerup(kind string, now time.Time) error {
	if t.PowerupCount(kind) == 0 {
		return apperrors.Conflictf("team %q has no %s powerups remaining", t.Name, kind)
	}
	if t.Powerups == nil {
		t.Powerups = map[string]int{}
	}
	t.Powerups[kind]--
	if t.PowerupCooldowns == nil {
		t.PowerupCooldowns = map[string]time.Time{}
	}
	t.PowerupCooldowns[kind] = now
	return nil
}

// HasMember reports whether name is already on the roster.
func (t *Team) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}
