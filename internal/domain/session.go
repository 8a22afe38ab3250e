package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus tracks the workout session lifecycle.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// PRType names the personal-record metrics a cardio result can hold. Which
// metric applies depends on the exercise's CardioTarget. A result holds at
// most one PR type, and per exercise at most one result holds each type.
type PRType string

const (
	PRFastestTime     PRType = "fastest_time"
	PRLongestDistance PRType = "longest_distance"
	PRBestPace        PRType = "best_pace"
)

// SetResult is one logged set of a lift exercise. Immutable once logged
// except through explicit user edits.
type SetResult struct {
	WeightKg  float64 `bson:"weightKg" json:"weightKg"`
	Reps      int     `bson:"reps" json:"reps"`
	Completed bool    `bson:"completed" json:"completed"`
}

// LiftEntry groups the logged sets for one exercise within a session.
type LiftEntry struct {
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"` // Denormalized for display
	Sets         []SetResult        `bson:"sets" json:"sets"`
}

// CardioResult is one logged cardio effort.
type CardioResult struct {
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	DistanceM   float64            `bson:"distanceM" json:"distanceM"`
	DurationSec int                `bson:"durationSec" json:"durationSec"`
	Calories    int                `bson:"calories,omitempty" json:"calories,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	IsPersonalRecord   bool   `bson:"isPersonalRecord" json:"isPersonalRecord"`
	PersonalRecordType PRType `bson:"personalRecordType,omitempty" json:"personalRecordType,omitempty"`
}

// PaceSecPerKm returns the pace in seconds per kilometer, or 0 when the
// result covered no distance (such results never hold a pace PR).
func (r CardioResult) PaceSecPerKm() float64 {
	if r.DistanceM <= 0 {
		return 0
	}
	return float64(r.DurationSec) / (r.DistanceM / 1000)
}

// ManualOverrides records which aggregate fields the user edited by hand.
// A set flag suppresses automatic recomputation of that field only; the
// remaining aggregates keep recomputing as results are logged.
type ManualOverrides struct {
	Duration bool `bson:"duration" json:"duration"`
	Distance bool `bson:"distance" json:"distance"`
	Calories bool `bson:"calories" json:"calories"`
}

// WorkoutSession is a single lift or cardio workout. It is created when the
// workout starts, mutated as results are logged, and frozen on completion
// apart from explicit manual edits.
type WorkoutSession struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"userId" json:"userId"`
	ExecutionID *primitive.ObjectID `bson:"executionId,omitempty" json:"executionId,omitempty"` // Owning program execution, if any

	Kind   ExerciseKind  `bson:"kind" json:"kind"`
	Status SessionStatus `bson:"status" json:"status"`

	StartedAt   time.Time  `bson:"startedAt" json:"startedAt"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	Entries       []LiftEntry    `bson:"entries,omitempty" json:"entries,omitempty"`
	CardioResults []CardioResult `bson:"cardioResults,omitempty" json:"cardioResults,omitempty"`

	// Derived aggregates. Volume/sets/reps always recompute from the logged
	// sets; duration, distance and calories recompute unless the matching
	// override flag is set.
	TotalVolumeKg    float64 `bson:"totalVolumeKg" json:"totalVolumeKg"`
	TotalSets        int     `bson:"totalSets" json:"totalSets"`
	TotalReps        int     `bson:"totalReps" json:"totalReps"`
	TotalDurationSec int     `bson:"totalDurationSec" json:"totalDurationSec"`
	TotalDistanceM   float64 `bson:"totalDistanceM" json:"totalDistanceM"`
	TotalCalories    int     `bson:"totalCalories" json:"totalCalories"`

	Overrides ManualOverrides `bson:"overrides" json:"overrides"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Recalculate refreshes the derived aggregates from the logged results.
// Only completed sets and results count. Fields with a manual override keep
// their current value.
func (s *WorkoutSession) Recalculate() {
	volume := 0.0
	sets := 0
	reps := 0
	for _, entry := range s.Entries {
		for _, set := range entry.Sets {
			if !set.Completed {
				continue
			}
			volume += set.WeightKg * float64(set.Reps)
			sets++
			reps += set.Reps
		}
	}
	s.TotalVolumeKg = volume
	s.TotalSets = sets
	s.TotalReps = reps

	distance := 0.0
	duration := 0
	calories := 0
	for _, result := range s.CardioResults {
		if !result.Completed {
			continue
		}
		distance += result.DistanceM
		duration += result.DurationSec
		calories += result.Calories
	}
	if !s.Overrides.Distance {
		s.TotalDistanceM = distance
	}
	if !s.Overrides.Calories {
		s.TotalCalories = calories
	}
	if !s.Overrides.Duration {
		if s.Kind == ExerciseCardio {
			s.TotalDurationSec = duration
		} else if s.CompletedAt != nil {
			s.TotalDurationSec = int(s.CompletedAt.Sub(s.StartedAt).Seconds())
		}
	}
}

// Complete finalizes the session at the given time and refreshes totals.
// Calling it on an already completed session is a no-op.
func (s *WorkoutSession) Complete(at time.Time) {
	if s.Status == SessionCompleted {
		return
	}
	s.Status = SessionCompleted
	s.CompletedAt = &at
	s.Recalculate()
}
