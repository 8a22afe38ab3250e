package repository

import (
	"context"

	"alcyxob/reptrack/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	// AccumulateLifetime adds a completed session's totals to the user's
	// lifetime stats. Values only ever grow.
	AccumulateLifetime(ctx context.Context, userID primitive.ObjectID, delta domain.LifetimeStats) error
}

// MeasurementRepository stores body measurement sets.
type MeasurementRepository interface {
	Create(ctx context.Context, m *domain.BodyMeasurement) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.BodyMeasurement, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.BodyMeasurement, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMeasurement, error)
}

// ExerciseRepository stores exercise definitions.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error // Ensure the user owns the exercise
}

// SessionRepository stores workout sessions and supports the cross-session
// queries personal-record detection needs.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	// ListCompletedCardioResults returns every completed cardio result the
	// user has logged for the exercise, across all completed sessions.
	ListCompletedCardioResults(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.CardioResult, error)
	// ClearPersonalRecord unsets the PR flag of the given type on every
	// result for the exercise. Used to keep the single-holder invariant when
	// a new record is set.
	ClearPersonalRecord(ctx context.Context, userID, exerciseID primitive.ObjectID, prType domain.PRType) error
}

// ProgramRepository stores program templates and executions.
type ProgramRepository interface {
	CreateTemplate(ctx context.Context, tmpl *domain.ProgramTemplate) (primitive.ObjectID, error)
	GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error)
	GetTemplatesByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgramTemplate, error)

	CreateExecution(ctx context.Context, exec *domain.ProgramExecution) (primitive.ObjectID, error)
	GetExecutionByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramExecution, error)
	GetExecutionsByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgramExecution, error)
	UpdateExecution(ctx context.Context, exec *domain.ProgramExecution) error
}

// PhotoRepository stores progress photo metadata; the images live in S3.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressPhoto, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}
