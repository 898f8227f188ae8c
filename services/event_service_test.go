package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clan-bingo-system/models"
)

func makeTiles(n int) []models.Tile {
	tiles := make([]models.Tile, n)
	for i := range tiles {
		tiles[i] = models.Tile{Task: "task", Points: 10}
	}
	return tiles
}

// TestValidateBoard_PerfectSquare tests a valid 5x5 board
func TestValidateBoard_PerfectSquare(t *testing.T) {
	size, err := validateBoard(makeTiles(25))

	assert.NoError(t, err)
	assert.Equal(t, 5, size)
}

// TestValidateBoard_NonSquareCount tests a tile count off the grid
func TestValidateBoard_NonSquareCount(t *testing.T) {
	_, err := validateBoard(makeTiles(10))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "16 tiles")
}

// TestValidateBoard_Empty tests the no-tiles case
func TestValidateBoard_Empty(t *testing.T) {
	_, err := validateBoard(nil)

	assert.Error(t, err)
}

// TestNormalizeTiles_ReindexesRowMajor tests that ids follow slice order
func TestNormalizeTiles_ReindexesRowMajor(t *testing.T) {
	tiles := []models.Tile{{ID: 99}, {ID: 4}, {ID: 4}}

	out := normalizeTiles(tiles)

	assert.Equal(t, 0, out[0].ID)
	assert.Equal(t, 1, out[1].ID)
	assert.Equal(t, 2, out[2].ID)
}

// TestNormalizeTiles_Defaults tests difficulty and type backfill
func TestNormalizeTiles_Defaults(t *testing.T) {
	out := normalizeTiles([]models.Tile{{Task: "kill boss"}})

	assert.Equal(t, models.DifficultyMedium, out[0].Difficulty)
	assert.Equal(t, models.TileTypeNormal, out[0].Type)
	assert.True(t, out[0].Revealed)
}

// TestNormalizeTiles_MysteryStartsHidden tests the mystery visibility rule
func TestNormalizeTiles_MysteryStartsHidden(t *testing.T) {
	out := normalizeTiles([]models.Tile{
		{Task: "secret", IsMystery: true},
		{Task: "plain", Revealed: false},
	})

	assert.Equal(t, models.TileTypeMystery, out[0].Type)
	assert.False(t, out[0].Revealed)
	assert.True(t, out[1].Revealed)
}

// TestValidStatusTransition_Forward tests the allowed lifecycle moves
func TestValidStatusTransition_Forward(t *testing.T) {
	assert.NoError(t, validStatusTransition(models.EventStatusUpcoming, models.EventStatusActive))
	assert.NoError(t, validStatusTransition(models.EventStatusActive, models.EventStatusCompleted))
	assert.NoError(t, validStatusTransition(models.EventStatusUpcoming, models.EventStatusCompleted))
}

// TestValidStatusTransition_Backward tests that the lifecycle never rewinds
func TestValidStatusTransition_Backward(t *testing.T) {
	assert.Error(t, validStatusTransition(models.EventStatusActive, models.EventStatusUpcoming))
	assert.Error(t, validStatusTransition(models.EventStatusCompleted, models.EventStatusActive))
}

// TestValidStatusTransition_UnknownStatus tests an arbitrary status string
func TestValidStatusTransition_UnknownStatus(t *testing.T) {
	assert.Error(t, validStatusTransition(models.EventStatusUpcoming, "paused"))
}
