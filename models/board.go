package models

import (
	"math"
)

// BoardSize returns the side length of the square grid that holds tileCount
// tiles. Events are validated so that tileCount == BoardSize(tileCount)².
func BoardSize(tileCount int) int {
	if tileCount <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(tileCount))))
}

// AdjacentTiles returns the orthogonal neighbors of tileID on a
// boardSize×boardSize grid. Neighbors never wrap across a row or column
// boundary and never fall outside [0, boardSize²).
func AdjacentTiles(tileID, boardSize int) []int {
	if boardSize <= 0 || tileID < 0 || tileID >= boardSize*boardSize {
		return nil
	}
	row := tileID / boardSize
	col := tileID % boardSize

	var adjacent []int
	if row > 0 {
		adjacent = append(adjacent, tileID-boardSize)
	}
	if row < boardSize-1 {
		adjacent = append(adjacent, tileID+boardSize)
	}
	if col > 0 {
		adjacent = append(adjacent, tileID-1)
	}
	if col < boardSize-1 {
		adjacent = append(adjacent, tileID+1)
	}
	return adjacent
}

// CanRevealMystery reports whether a team holding approved completions on
// approvedTileIDs may reveal the given tile by proximity: the tile must be
// an unrevealed mystery and at least one orthogonal neighbor must already
// be approved for that team.
func CanRevealMystery(tile Tile, approvedTileIDs []int, boardSize int) bool {
	if !tile.IsMystery || tile.Revealed {
		return false
	}
	approved := make(map[int]struct{}, len(approvedTileIDs))
	for _, id := range approvedTileIDs {
		approved[id] = struct{}{}
	}
	for _, id := range AdjacentTiles(tile.ID, boardSize) {
		if _, ok := approved[id]; ok {
			return true
		}
	}
	return false
}
