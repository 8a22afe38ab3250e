package service

import (
	"context"
	"errors"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify or delete this exercise")
	ErrValidationFailed     = errors.New("exercise validation failed")
)

// ExerciseService manages the user's exercise library.
type ExerciseService interface {
	CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	GetExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, userID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func validateExercise(exercise *domain.Exercise) error {
	if exercise.Name == "" {
		return ErrValidationFailed
	}
	switch exercise.Kind {
	case domain.ExerciseLift:
		// Lifts carry no cardio target.
		exercise.CardioTarget = ""
		exercise.TargetValue = 0
	case domain.ExerciseCardio:
		switch exercise.CardioTarget {
		case domain.TargetDistance, domain.TargetTime:
			if exercise.TargetValue <= 0 {
				return ErrValidationFailed
			}
		case domain.TargetOpen:
			exercise.TargetValue = 0
		default:
			return ErrValidationFailed
		}
	default:
		return ErrValidationFailed
	}
	return nil
}

// CreateExercise adds a definition to the user's library.
func (s *exerciseService) CreateExercise(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.UserID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an exercise")
	}
	if err := validateExercise(exercise); err != nil {
		return nil, err
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExerciseByID retrieves a single exercise owned by the user.
func (s *exerciseService) GetExerciseByID(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.UserID != userID {
		return nil, ErrExerciseAccessDenied
	}
	return exercise, nil
}

// GetExercises retrieves the user's whole library.
func (s *exerciseService) GetExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByUserID(ctx, userID)
}

// UpdateExercise replaces the mutable fields of a definition the user owns.
func (s *exerciseService) UpdateExercise(ctx context.Context, userID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error) {
	if err := validateExercise(exercise); err != nil {
		return nil, err
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exercise.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrExerciseAccessDenied
	}

	existing.Name = exercise.Name
	existing.Kind = exercise.Kind
	existing.MuscleGroup = exercise.MuscleGroup
	existing.CardioTarget = exercise.CardioTarget
	existing.TargetValue = exercise.TargetValue

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteExercise removes a definition. The repository filter enforces
// ownership at the database level.
func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
	err := s.exerciseRepo.Delete(ctx, exerciseID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}
