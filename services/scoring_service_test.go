package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clan-bingo-system/models"
)

// TestApplyApproval_CreditsPointsAndTile tests the basic credit
func TestApplyApproval_CreditsPointsAndTile(t *testing.T) {
	team := models.Team{TotalPoints: 40, CompletedTiles: []int{1, 2}}
	completion := models.TileCompletion{TileID: 7, PointsAwarded: 25}

	applyApproval(&team, &completion)

	assert.Equal(t, 65, team.TotalPoints)
	assert.Equal(t, []int{1, 2, 7}, team.CompletedTiles)
}

// TestApplyApproval_DuplicateTileAppendsOnce tests a second completion on the
// same tile: points still count, the tile list stays deduplicated
func TestApplyApproval_DuplicateTileAppendsOnce(t *testing.T) {
	team := models.Team{TotalPoints: 25, CompletedTiles: []int{7}}
	completion := models.TileCompletion{TileID: 7, PointsAwarded: 25}

	applyApproval(&team, &completion)

	assert.Equal(t, 50, team.TotalPoints)
	assert.Equal(t, []int{7}, team.CompletedTiles)
}

// TestSortStandings_DescendingByPoints tests the ranking order
func TestSortStandings_DescendingByPoints(t *testing.T) {
	teams := []models.Team{
		{Name: "Red", TotalPoints: 30},
		{Name: "Blue", TotalPoints: 90},
		{Name: "Green", TotalPoints: 60},
	}

	ranked := sortStandings(teams)

	assert.Equal(t, "Blue", ranked[0].Name)
	assert.Equal(t, "Green", ranked[1].Name)
	assert.Equal(t, "Red", ranked[2].Name)
}

// TestSortStandings_StableOnTies tests that equal scores keep creation order
func TestSortStandings_StableOnTies(t *testing.T) {
	teams := []models.Team{
		{Name: "Red", TotalPoints: 50},
		{Name: "Blue", TotalPoints: 50},
		{Name: "Green", TotalPoints: 50},
	}

	ranked := sortStandings(teams)

	assert.Equal(t, "Red", ranked[0].Name)
	assert.Equal(t, "Blue", ranked[1].Name)
	assert.Equal(t, "Green", ranked[2].Name)
}

// TestSortStandings_DoesNotMutateInput tests that the input slice is untouched
func TestSortStandings_DoesNotMutateInput(t *testing.T) {
	teams := []models.Team{
		{Name: "Red", TotalPoints: 10},
		{Name: "Blue", TotalPoints: 99},
	}

	sortStandings(teams)

	assert.Equal(t, "Red", teams[0].Name)
}

// TestAggregatePlayerStats_Totals tests per-player folding across events
func TestAggregatePlayerStats_Totals(t *testing.T) {
	completions := []models.TileCompletion{
		{PlayerName: "Zezima", EventID: "e1", TileID: 0, PointsAwarded: 10},
		{PlayerName: "Zezima", EventID: "e1", TileID: 1, PointsAwarded: 20},
		{PlayerName: "Zezima", EventID: "e2", TileID: 0, PointsAwarded: 15},
		{PlayerName: "Durial321", EventID: "e1", TileID: 2, PointsAwarded: 40},
	}

	stats := aggregatePlayerStats(completions)

	assert.Len(t, stats, 2)
	assert.Equal(t, "Zezima", stats[0].Name)
	assert.Equal(t, 45, stats[0].Points)
	assert.Equal(t, 3, stats[0].Tiles)
	assert.Equal(t, 2, stats[0].Events)
	assert.Equal(t, "Durial321", stats[1].Name)
	assert.Equal(t, 40, stats[1].Points)
	assert.Equal(t, 1, stats[1].Events)
}

// TestAggregatePlayerStats_Badges tests that thresholds apply to the totals
func TestAggregatePlayerStats_Badges(t *testing.T) {
	completions := []models.TileCompletion{
		{PlayerName: "Zezima", EventID: "e1", TileID: 0, PointsAwarded: 100},
	}

	stats := aggregatePlayerStats(completions)

	ids := make([]string, 0, len(stats[0].Badges))
	for _, b := range stats[0].Badges {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []string{"first_tile", "hundred_points", "first_event"}, ids)
}

// TestAggregatePlayerStats_Empty tests the empty ledger
func TestAggregatePlayerStats_Empty(t *testing.T) {
	assert.Empty(t, aggregatePlayerStats(nil))
}

// TestStandingsCacheKey tests the per-event key shape
func TestStandingsCacheKey(t *testing.T) {
	assert.Equal(t, "standings:e1", standingsCacheKey("e1"))
}
