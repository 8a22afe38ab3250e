package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramDay is one planned training day within a program week.
type ProgramDay struct {
	DayNumber   int                  `bson:"dayNumber" json:"dayNumber"` // 1..DaysPerWeek
	Name        string               `bson:"name" json:"name"`           // e.g. "Day 1: Upper Body"
	ExerciseIDs []primitive.ObjectID `bson:"exerciseIds,omitempty" json:"exerciseIds,omitempty"`
}

// ProgramTemplate is a reusable multi-week training plan. Executions track a
// user's progress through a template without mutating it.
type ProgramTemplate struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"` // Owner of the template

	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Weeks       int          `bson:"weeks" json:"weeks"`
	DaysPerWeek int          `bson:"daysPerWeek" json:"daysPerWeek"`
	Days        []ProgramDay `bson:"days,omitempty" json:"days,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProgramExecution tracks one user's run through a program template.
// Invariants: 1 <= CurrentDay <= DaysPerWeek and CurrentWeek >= 1 while the
// execution is active; once IsCompleted is set the pointers never move again.
type ProgramExecution struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"`

	CurrentWeek int  `bson:"currentWeek" json:"currentWeek"`
	CurrentDay  int  `bson:"currentDay" json:"currentDay"`
	IsCompleted bool `bson:"isCompleted" json:"isCompleted"`

	StartedAt time.Time  `bson:"startedAt" json:"startedAt"`
	EndedAt   *time.Time `bson:"endedAt,omitempty" json:"endedAt,omitempty"`

	CompletedSessionIDs []primitive.ObjectID `bson:"completedSessionIds,omitempty" json:"completedSessionIds,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Advance moves the execution pointer one training day forward. When the day
// pointer passes daysPerWeek it wraps to day 1 of the next week, and when the
// week pointer passes totalWeeks the execution enters its terminal completed
// state. Advancing a completed execution is a no-op.
func (e *ProgramExecution) Advance(daysPerWeek, totalWeeks int, now time.Time) {
	if e.IsCompleted || daysPerWeek < 1 || totalWeeks < 1 {
		return
	}
	e.CurrentDay++
	if e.CurrentDay > daysPerWeek {
		e.CurrentDay = 1
		e.CurrentWeek++
	}
	if e.CurrentWeek > totalWeeks {
		e.IsCompleted = true
		e.EndedAt = &now
		// Park the pointers on the last valid day so reads stay in range.
		e.CurrentWeek = totalWeeks
		e.CurrentDay = daysPerWeek
	}
}
