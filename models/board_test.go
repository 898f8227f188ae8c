package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBoardSize_PerfectSquares tests that common board sizes round-trip
func TestBoardSize_PerfectSquares(t *testing.T) {
	assert.Equal(t, 3, BoardSize(9))
	assert.Equal(t, 4, BoardSize(16))
	assert.Equal(t, 5, BoardSize(25))
	assert.Equal(t, 7, BoardSize(49))
}

// TestBoardSize_NonSquareRoundsUp tests ceiling behavior for odd counts
func TestBoardSize_NonSquareRoundsUp(t *testing.T) {
	assert.Equal(t, 4, BoardSize(10))
	assert.Equal(t, 5, BoardSize(17))
}

// TestBoardSize_ZeroTiles tests the empty board edge case
func TestBoardSize_ZeroTiles(t *testing.T) {
	assert.Equal(t, 0, BoardSize(0))
}

// TestAdjacentTiles_Center tests that an interior tile has four neighbors
func TestAdjacentTiles_Center(t *testing.T) {
	adjacent := AdjacentTiles(12, 5)

	assert.ElementsMatch(t, []int{7, 17, 11, 13}, adjacent)
}

// TestAdjacentTiles_TopLeftCorner tests that a corner has two neighbors
func TestAdjacentTiles_TopLeftCorner(t *testing.T) {
	adjacent := AdjacentTiles(0, 5)

	assert.ElementsMatch(t, []int{1, 5}, adjacent)
}

// TestAdjacentTiles_BottomRightCorner tests the last tile of the grid
func TestAdjacentTiles_BottomRightCorner(t *testing.T) {
	adjacent := AdjacentTiles(24, 5)

	assert.ElementsMatch(t, []int{19, 23}, adjacent)
}

// TestAdjacentTiles_NoRowWraparound tests that row ends do not connect
func TestAdjacentTiles_NoRowWraparound(t *testing.T) {
	// Tile 4 ends row 0 on a 5x5 board; tile 5 starts row 1.
	adjacent := AdjacentTiles(4, 5)

	assert.NotContains(t, adjacent, 5)
	assert.ElementsMatch(t, []int{3, 9}, adjacent)
}

// TestAdjacentTiles_OutOfRange tests ids outside the grid
func TestAdjacentTiles_OutOfRange(t *testing.T) {
	assert.Nil(t, AdjacentTiles(-1, 5))
	assert.Nil(t, AdjacentTiles(25, 5))
	assert.Nil(t, AdjacentTiles(0, 0))
}

// TestAdjacentTiles_NeverOutsideBoard tests bounds over every tile
func TestAdjacentTiles_NeverOutsideBoard(t *testing.T) {
	const size = 5
	for id := 0; id < size*size; id++ {
		for _, n := range AdjacentTiles(id, size) {
			assert.GreaterOrEqual(t, n, 0)
			assert.Less(t, n, size*size)
		}
	}
}

// TestCanRevealMystery_AdjacentApproved tests a reveal unlocked by proximity
func TestCanRevealMystery_AdjacentApproved(t *testing.T) {
	tile := Tile{ID: 12, IsMystery: true, Revealed: false}

	assert.True(t, CanRevealMystery(tile, []int{11}, 5))
}

// TestCanRevealMystery_NoAdjacentApproval tests a mystery with no nearby tiles
func TestCanRevealMystery_NoAdjacentApproval(t *testing.T) {
	tile := Tile{ID: 12, IsMystery: true, Revealed: false}

	assert.False(t, CanRevealMystery(tile, []int{0, 24}, 5))
}

// TestCanRevealMystery_NotMystery tests that normal tiles are never revealable
func TestCanRevealMystery_NotMystery(t *testing.T) {
	tile := Tile{ID: 12, IsMystery: false}

	assert.False(t, CanRevealMystery(tile, []int{11}, 5))
}

// TestCanRevealMystery_AlreadyRevealed tests that a revealed mystery stays done
func TestCanRevealMystery_AlreadyRevealed(t *testing.T) {
	tile := Tile{ID: 12, IsMystery: true, Revealed: true}

	assert.False(t, CanRevealMystery(tile, []int{11}, 5))
}

// TestCanRevealMystery_DiagonalDoesNotCount tests that diagonals are not adjacent
func TestCanRevealMystery_DiagonalDoesNotCount(t *testing.T) {
	tile := Tile{ID: 12, IsMystery: true, Revealed: false}

	// 6, 8, 16, 18 are the diagonal neighbors of 12 on a 5x5 board.
	assert.False(t, CanRevealMystery(tile, []int{6, 8, 16, 18}, 5))
}
