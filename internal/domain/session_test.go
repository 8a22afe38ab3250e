package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecalculateCountsOnlyCompletedSets(t *testing.T) {
	session := &WorkoutSession{
		Kind:   ExerciseLift,
		Status: SessionInProgress,
		Entries: []LiftEntry{
			{Sets: []SetResult{
				{WeightKg: 100, Reps: 5, Completed: true},
				{WeightKg: 100, Reps: 5, Completed: true},
				{WeightKg: 105, Reps: 3, Completed: false}, // skipped set
			}},
			{Sets: []SetResult{
				{WeightKg: 60, Reps: 10, Completed: true},
			}},
		},
	}

	session.Recalculate()
	assert.Equal(t, 100.0*5+100*5+60*10, session.TotalVolumeKg)
	assert.Equal(t, 3, session.TotalSets)
	assert.Equal(t, 20, session.TotalReps)
}

func TestRecalculateCardioTotals(t *testing.T) {
	session := &WorkoutSession{
		Kind:   ExerciseCardio,
		Status: SessionInProgress,
		CardioResults: []CardioResult{
			{DistanceM: 5000, DurationSec: 1500, Calories: 320, Completed: true},
			{DistanceM: 2000, DurationSec: 600, Calories: 120, Completed: false},
		},
	}

	session.Recalculate()
	assert.Equal(t, 5000.0, session.TotalDistanceM)
	assert.Equal(t, 1500, session.TotalDurationSec)
	assert.Equal(t, 320, session.TotalCalories)
}

func TestManualOverrideSuppressesRecomputationPerField(t *testing.T) {
	session := &WorkoutSession{
		Kind:   ExerciseCardio,
		Status: SessionInProgress,
		CardioResults: []CardioResult{
			{DistanceM: 5000, DurationSec: 1500, Completed: true},
		},
	}
	session.Recalculate()

	// User edits duration by hand; the flag locks that field only.
	session.TotalDurationSec = 900
	session.Overrides.Duration = true

	session.CardioResults = append(session.CardioResults, CardioResult{
		DistanceM: 3000, DurationSec: 900, Completed: true,
	})
	session.Recalculate()

	assert.Equal(t, 900, session.TotalDurationSec, "manually edited duration must not recompute")
	assert.Equal(t, 8000.0, session.TotalDistanceM, "distance still recomputes")
}

func TestCompleteIsIdempotent(t *testing.T) {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	session := &WorkoutSession{
		Kind:      ExerciseLift,
		Status:    SessionInProgress,
		StartedAt: start,
	}

	first := start.Add(45 * time.Minute)
	session.Complete(first)
	assert.Equal(t, SessionCompleted, session.Status)
	assert.Equal(t, 45*60, session.TotalDurationSec)

	// A second completion call must not move the timestamp.
	session.Complete(first.Add(time.Hour))
	assert.Equal(t, first, *session.CompletedAt)
}

func TestPaceSecPerKm(t *testing.T) {
	result := CardioResult{DistanceM: 5000, DurationSec: 1500}
	assert.InDelta(t, 300.0, result.PaceSecPerKm(), 1e-9)

	// No distance covered: pace undefined, reported as zero.
	assert.Equal(t, 0.0, CardioResult{DurationSec: 600}.PaceSecPerKm())
}
