package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clan-bingo-system/models"
)

// TestValidateSteal_ApprovedForeign tests the happy path
func TestValidateSteal_ApprovedForeign(t *testing.T) {
	source := models.TileCompletion{TeamID: "blue", Status: models.CompletionApproved}

	assert.NoError(t, validateSteal(&source, "red"))
}

// TestValidateSteal_PendingSource tests that unreviewed completions are safe
func TestValidateSteal_PendingSource(t *testing.T) {
	source := models.TileCompletion{TeamID: "blue", Status: models.CompletionPending}

	assert.Error(t, validateSteal(&source, "red"))
}

// TestValidateSteal_OwnTeam tests the self-steal guard
func TestValidateSteal_OwnTeam(t *testing.T) {
	source := models.TileCompletion{TeamID: "red", Status: models.CompletionApproved}

	assert.Error(t, validateSteal(&source, "red"))
}

// TestStolenCopy_Fields tests the shape of the acting team's copy
func TestStolenCopy_Fields(t *testing.T) {
	source := models.TileCompletion{
		ID:               "c1",
		EventID:          "e1",
		TeamID:           "blue",
		TileID:           12,
		PlayerName:       "Zezima",
		ScreenshotURL:    "https://cdn.example/shot.png",
		Status:           models.CompletionApproved,
		PointsAwarded:    30,
		UsedDoublePoints: true,
	}

	copied := stolenCopy(&source, "red", "Durial321")

	assert.NotEqual(t, source.ID, copied.ID)
	assert.Equal(t, "red", copied.TeamID)
	assert.Equal(t, 12, copied.TileID)
	assert.Equal(t, "Durial321 (stolen)", copied.PlayerName)
	assert.Equal(t, source.ScreenshotURL, copied.ScreenshotURL)
	assert.Equal(t, models.CompletionApproved, copied.Status)
	assert.Equal(t, 30, copied.PointsAwarded)
	assert.False(t, copied.UsedDoublePoints)
}

// TestStolenCopy_SourceUntouched tests that the victim's ledger entry is intact
func TestStolenCopy_SourceUntouched(t *testing.T) {
	source := models.TileCompletion{
		ID: "c1", TeamID: "blue", PlayerName: "Zezima",
		Status: models.CompletionApproved, PointsAwarded: 30,
	}
	before := source

	stolenCopy(&source, "red", "Durial321")

	assert.Equal(t, before, source)
}

// TestStealScenario tests the full arithmetic of a steal: consume one
// counter, credit the copy, victim aggregates unchanged
func TestStealScenario(t *testing.T) {
	victim := models.Team{ID: "blue", Name: "Blue", TotalPoints: 30, CompletedTiles: []int{12}}
	thief := models.Team{ID: "red", Name: "Red", Powerups: models.DefaultPowerups()}
	source := models.TileCompletion{
		ID: "c1", EventID: "e1", TeamID: "blue", TileID: 12,
		PlayerName: "Zezima", Status: models.CompletionApproved, PointsAwarded: 30,
	}

	assert.NoError(t, validateSteal(&source, thief.ID))
	assert.NoError(t, thief.ConsumePowerup(models.PowerupStealCompletion, time.Now()))

	copied := stolenCopy(&source, thief.ID, "Durial321")
	applyApproval(&thief, &copied)

	assert.Equal(t, 30, thief.TotalPoints)
	assert.Equal(t, []int{12}, thief.CompletedTiles)
	assert.Equal(t, 0, thief.PowerupCount(models.PowerupStealCompletion))
	assert.Equal(t, 30, victim.TotalPoints)
	assert.Equal(t, []int{12}, victim.CompletedTiles)
}

// TestDoubleBlockScenario tests that blocking the same tile twice consumes
// both counters but leaves a single block entry
func TestDoubleBlockScenario(t *testing.T) {
	acting := models.Team{ID: "red", Color: "#ff0000", Powerups: map[string]int{models.PowerupBlockTile: 2}}
	target := models.Team{ID: "blue"}

	assert.NoError(t, acting.ConsumePowerup(models.PowerupBlockTile, time.Now()))
	target.BlockedTiles = target.BlockedTiles.Add(7, acting.Color)

	assert.NoError(t, acting.ConsumePowerup(models.PowerupBlockTile, time.Now()))
	target.BlockedTiles = target.BlockedTiles.Add(7, acting.Color)

	assert.Len(t, target.BlockedTiles, 1)
	assert.Equal(t, 0, acting.PowerupCount(models.PowerupBlockTile))
}
