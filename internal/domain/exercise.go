package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseKind distinguishes strength work from cardio.
type ExerciseKind string

const (
	ExerciseLift   ExerciseKind = "lift"
	ExerciseCardio ExerciseKind = "cardio"
)

// CardioTarget describes how a cardio exercise is constrained. The target
// type decides which personal-record metric applies to its results:
// distance targets race for the fastest time, time targets for the longest
// distance, open exercises for the best pace.
type CardioTarget string

const (
	TargetDistance CardioTarget = "distance"
	TargetTime     CardioTarget = "time"
	TargetOpen     CardioTarget = "open"
)

// Exercise represents a single exercise definition in the user's library.
type Exercise struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"` // Owner of the definition

	Name        string       `bson:"name" json:"name"`
	Kind        ExerciseKind `bson:"kind" json:"kind"`
	MuscleGroup string       `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // Lift only

	// Cardio only. TargetValue is meters for distance targets and seconds
	// for time targets; zero for open exercises.
	CardioTarget CardioTarget `bson:"cardioTarget,omitempty" json:"cardioTarget,omitempty"`
	TargetValue  float64      `bson:"targetValue,omitempty" json:"targetValue,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
