package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestDefaultPowerups_Loadout tests the starting counters for a new team
func TestDefaultPowerups_Loadout(t *testing.T) {
	p := DefaultPowerups()

	assert.Equal(t, 2, p[PowerupDoublePoints])
	assert.Equal(t, 1, p[PowerupBlockTile])
	assert.Equal(t, 1, p[PowerupRevealMystery])
	assert.Equal(t, 1, p[PowerupStealCompletion])
}

// TestBlockedTile_UnmarshalObject tests decoding the current object shape
func TestBlockedTile_UnmarshalObject(t *testing.T) {
	var b BlockedTile
	err := json.Unmarshal([]byte(`{"tile_id":7,"blocker_color":"#ff0000"}`), &b)

	assert.NoError(t, err)
	assert.Equal(t, 7, b.TileID)
	assert.Equal(t, "#ff0000", b.BlockerColor)
}

// TestBlockedTile_UnmarshalLegacyInt tests decoding a bare tile id
func TestBlockedTile_UnmarshalLegacyInt(t *testing.T) {
	var b BlockedTile
	err := json.Unmarshal([]byte(`7`), &b)

	assert.NoError(t, err)
	assert.Equal(t, 7, b.TileID)
	assert.Empty(t, b.BlockerColor)
}

// TestBlockedTileList_UnmarshalMixed tests a list mixing both shapes
func TestBlockedTileList_UnmarshalMixed(t *testing.T) {
	var l BlockedTileList
	err := json.Unmarshal([]byte(`[3,{"tile_id":8,"blocker_color":"#00ff00"}]`), &l)

	assert.NoError(t, err)
	assert.Len(t, l, 2)
	assert.True(t, l.Contains(3))
	assert.True(t, l.Contains(8))
}

// TestBlockedTileList_AddIdempotent tests that double-blocking keeps one entry
func TestBlockedTileList_AddIdempotent(t *testing.T) {
	var l BlockedTileList
	l = l.Add(5, "#ff0000")
	l = l.Add(5, "#0000ff")

	assert.Len(t, l, 1)
	assert.Equal(t, "#ff0000", l[0].BlockerColor)
}

// TestBlockedTileList_Remove tests clearing a block
func TestBlockedTileList_Remove(t *testing.T) {
	l := BlockedTileList{}.Add(5, "#ff0000").Add(9, "#00ff00")
	l = l.Remove(5)

	assert.Len(t, l, 1)
	assert.False(t, l.Contains(5))
	assert.True(t, l.Contains(9))
}

// TestConsumePowerup_Decrements tests a normal spend
func TestConsumePowerup_Decrements(t *testing.T) {
	team := Team{Name: "Red", Powerups: DefaultPowerups()}
	now := time.Now()

	err := team.ConsumePowerup(PowerupDoublePoints, now)

	assert.NoError(t, err)
	assert.Equal(t, 1, team.PowerupCount(PowerupDoublePoints))
	assert.Equal(t, now, team.PowerupCooldowns[PowerupDoublePoints])
}

// TestConsumePowerup_ZeroCount tests that an empty counter fails untouched
func TestConsumePowerup_ZeroCount(t *testing.T) {
	team := Team{Name: "Red", Powerups: map[string]int{PowerupBlockTile: 0}}

	err := team.ConsumePowerup(PowerupBlockTile, time.Now())

	assert.Error(t, err)
	assert.Equal(t, 0, team.PowerupCount(PowerupBlockTile))
	assert.Empty(t, team.PowerupCooldowns)
}

// TestConsumePowerup_NeverNegative tests repeated spends stop at zero
func TestConsumePowerup_NeverNegative(t *testing.T) {
	team := Team{Name: "Red", Powerups: map[string]int{PowerupRevealMystery: 1}}

	assert.NoError(t, team.ConsumePowerup(PowerupRevealMystery, time.Now()))
	assert.Error(t, team.ConsumePowerup(PowerupRevealMystery, time.Now()))
	assert.Equal(t, 0, team.PowerupCount(PowerupRevealMystery))
}

// TestPowerupCount_MissingKind tests a kind the team never had
func TestPowerupCount_MissingKind(t *testing.T) {
	team := Team{Powerups: map[string]int{}}

	assert.Equal(t, 0, team.PowerupCount(PowerupStealCompletion))
}

// TestHasMember tests roster lookup
func TestHasMember(t *testing.T) {
	team := Team{Members: []string{"Zezima", "Durial321"}}

	assert.True(t, team.HasMember("Zezima"))
	assert.False(t, team.HasMember("zezima"))
}
