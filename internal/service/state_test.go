package service

import (
	"testing"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScheduleState_ShiftExclusivity(t *testing.T) {
	state := NewScheduleState()

	assert.True(t, state.Available("Texas", models.CategoryTrading))
	state.Commit("Texas")
	assert.False(t, state.Available("Texas", models.CategoryTrading), "already placed this shift")

	state.BeginShift()
	assert.True(t, state.Available("Texas", models.CategoryTrading), "exclusivity resets per shift")
}

func TestScheduleState_UsageBudget(t *testing.T) {
	state := NewScheduleState()

	state.Commit("Texas")
	state.BeginShift()
	state.Commit("Texas")
	state.BeginShift()

	assert.Equal(t, 2, state.UsageCount("Texas"))
	assert.False(t, state.Available("Texas", models.CategoryTrading), "budget exhausted after two shifts")
	assert.False(t, state.Available("Texas", models.CategoryManufacturing))
}

func TestScheduleState_BoostedCapAppliesOnlyToTrading(t *testing.T) {
	state := NewScheduleState()
	state.SetBoosted([]string{"Exusiai"})

	assert.Equal(t, 3, state.UsageCap("Exusiai", models.CategoryTrading))
	assert.Equal(t, 2, state.UsageCap("Exusiai", models.CategoryManufacturing))
	assert.Equal(t, 2, state.UsageCap("Texas", models.CategoryTrading))

	state.Commit("Exusiai")
	state.BeginShift()
	state.Commit("Exusiai")
	state.BeginShift()

	assert.True(t, state.Available("Exusiai", models.CategoryTrading), "boosted operator gets a third trading shift")
	assert.False(t, state.Available("Exusiai", models.CategoryManufacturing))
}

func TestScheduleState_UsageSnapshotSorted(t *testing.T) {
	state := NewScheduleState()
	state.Commit("Lappland")
	state.Commit("Exusiai")
	state.BeginShift()
	state.Commit("Exusiai")

	snapshot := state.UsageSnapshot()
	assert.Equal(t, []OperatorUsage{
		{Name: "Exusiai", Shifts: 2},
		{Name: "Lappland", Shifts: 1},
	}, snapshot)
}
