package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BodyMeasurement is a set of circumference measurements taken at one point
// in time. Neck and waist are required for the Navy body-fat estimate; hip is
// only needed for female users. All circumferences are in centimeters.
type BodyMeasurement struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	NeckCm   *float64           `bson:"neckCm,omitempty" json:"neckCm,omitempty"`
	WaistCm  *float64           `bson:"waistCm,omitempty" json:"waistCm,omitempty"`
	HipCm    *float64           `bson:"hipCm,omitempty" json:"hipCm,omitempty"`
	WeightKg float64            `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	TakenAt  time.Time          `bson:"takenAt" json:"takenAt"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
