package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender type used by the body composition calculators.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel describes habitual daily activity. Each level carries a
// TDEE multiplier applied to the basal metabolic rate.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

// Multiplier returns the TDEE multiplier for the activity level.
// Unknown values fall back to the sedentary multiplier.
func (a ActivityLevel) Multiplier() float64 {
	switch a {
	case ActivityLightlyActive:
		return 1.375
	case ActivityModeratelyActive:
		return 1.55
	case ActivityVeryActive:
		return 1.725
	case ActivityExtremelyActive:
		return 1.9
	default:
		return 1.2
	}
}

// FitnessGoal describes what the user is training towards. Each goal carries
// a calorie adjustment factor (applied to TDEE) and a protein target in
// grams per kg of body weight.
type FitnessGoal string

const (
	GoalCut      FitnessGoal = "cut"
	GoalMaintain FitnessGoal = "maintain"
	GoalBulk     FitnessGoal = "bulk"
)

// CalorieAdjustment returns the factor applied to TDEE to obtain the daily
// calorie target. Unknown values behave like maintain.
func (g FitnessGoal) CalorieAdjustment() float64 {
	switch g {
	case GoalCut:
		return 0.8
	case GoalBulk:
		return 1.1
	default:
		return 1.0
	}
}

// ProteinPerKg returns the protein target in grams per kg of body weight.
func (g FitnessGoal) ProteinPerKg() float64 {
	switch g {
	case GoalCut:
		return 2.2
	case GoalBulk:
		return 2.0
	default:
		return 1.8
	}
}

// LifetimeStats accumulates totals over every completed session. Values are
// append-only: completing a session adds to them, nothing ever subtracts.
type LifetimeStats struct {
	TotalWorkouts    int     `bson:"totalWorkouts" json:"totalWorkouts"`
	TotalVolumeKg    float64 `bson:"totalVolumeKg" json:"totalVolumeKg"`
	TotalDurationSec int     `bson:"totalDurationSec" json:"totalDurationSec"`
	TotalDistanceM   float64 `bson:"totalDistanceM" json:"totalDistanceM"`
}

// User represents an account together with its biometric profile. The profile
// fields feed the nutrition and body composition calculators; BodyFatPercent
// is optional because most users never measure it.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON

	Gender         Gender        `bson:"gender,omitempty" json:"gender,omitempty"`
	AgeYears       int           `bson:"ageYears,omitempty" json:"ageYears,omitempty"`
	HeightCm       float64       `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg       float64       `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	BodyFatPercent *float64      `bson:"bodyFatPercent,omitempty" json:"bodyFatPercent,omitempty"`
	ActivityLevel  ActivityLevel `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	Goal           FitnessGoal   `bson:"goal,omitempty" json:"goal,omitempty"`

	Lifetime LifetimeStats `bson:"lifetime" json:"lifetime"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
