package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clan-bingo-system/models"
)

// TestAwardedPoints_Normal tests the plain tile value
func TestAwardedPoints_Normal(t *testing.T) {
	assert.Equal(t, 10, awardedPoints(10, false))
}

// TestAwardedPoints_Doubled tests the double-points powerup value
func TestAwardedPoints_Doubled(t *testing.T) {
	assert.Equal(t, 20, awardedPoints(10, true))
}

// TestTransitionStatus_Approve tests pending→approved
func TestTransitionStatus_Approve(t *testing.T) {
	credit, changed, err := transitionStatus(models.CompletionPending, models.CompletionApproved)

	assert.NoError(t, err)
	assert.True(t, credit)
	assert.True(t, changed)
}

// TestTransitionStatus_Reject tests pending→rejected with no credit
func TestTransitionStatus_Reject(t *testing.T) {
	credit, changed, err := transitionStatus(models.CompletionPending, models.CompletionRejected)

	assert.NoError(t, err)
	assert.False(t, credit)
	assert.True(t, changed)
}

// TestTransitionStatus_RepeatApproval tests the idempotent re-approval: no
// error, no second credit
func TestTransitionStatus_RepeatApproval(t *testing.T) {
	credit, changed, err := transitionStatus(models.CompletionApproved, models.CompletionApproved)

	assert.NoError(t, err)
	assert.False(t, credit)
	assert.False(t, changed)
}

// TestTransitionStatus_TerminalStates tests that ended completions stay ended
func TestTransitionStatus_TerminalStates(t *testing.T) {
	_, _, err := transitionStatus(models.CompletionApproved, models.CompletionRejected)
	assert.Error(t, err)

	_, _, err = transitionStatus(models.CompletionRejected, models.CompletionApproved)
	assert.Error(t, err)
}

// TestTransitionStatus_InvalidTarget tests an unknown target status
func TestTransitionStatus_InvalidTarget(t *testing.T) {
	_, _, err := transitionStatus(models.CompletionPending, "escalated")

	assert.Error(t, err)
}

// TestDoublePointsScenario tests a 5x5 event submission on tile 12 worth 10
// points with double_points active: 20 awarded, counter 2→1, and a later
// rejection does not refund the counter
func TestDoublePointsScenario(t *testing.T) {
	team := models.Team{Name: "Red", Powerups: models.DefaultPowerups()}

	err := team.ConsumePowerup(models.PowerupDoublePoints, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 1, team.PowerupCount(models.PowerupDoublePoints))

	points := awardedPoints(10, true)
	assert.Equal(t, 20, points)

	// Rejection is a pure status change; the spent counter stays spent.
	credit, changed, err := transitionStatus(models.CompletionPending, models.CompletionRejected)
	assert.NoError(t, err)
	assert.False(t, credit)
	assert.True(t, changed)
	assert.Equal(t, 1, team.PowerupCount(models.PowerupDoublePoints))
}
