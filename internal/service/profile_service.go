package service

import (
	"context"
	"errors"

	"alcyxob/reptrack/internal/calc"
	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileIncomplete  = errors.New("profile is missing required biometric fields")
	ErrMeasurementMissing = errors.New("no body measurement on record")
)

// NutritionReport is the full energy/macro chain computed from the profile.
type NutritionReport struct {
	BMR           float64         `json:"bmr"`
	TDEE          float64         `json:"tdee"`
	CalorieTarget float64         `json:"calorieTarget"`
	Macros        calc.MacroSplit `json:"macros"`
}

// FitnessReport combines the body composition estimates. Nil fields mean
// "unavailable" - the inputs to derive them were missing, which callers must
// present differently from a zero value.
type FitnessReport struct {
	BodyFatPercent *float64           `json:"bodyFatPercent,omitempty"`
	NormalizedFFMI *float64           `json:"normalizedFfmi,omitempty"`
	FFMICategory   *calc.FFMICategory `json:"ffmiCategory,omitempty"`
	Level          *calc.FitnessLevel `json:"level,omitempty"`
}

// ProfileUpdate carries the editable biometric profile fields.
type ProfileUpdate struct {
	Name           string
	Gender         domain.Gender
	AgeYears       int
	HeightCm       float64
	WeightKg       float64
	BodyFatPercent *float64
	ActivityLevel  domain.ActivityLevel
	Goal           domain.FitnessGoal
}

// ProfileService owns the user profile and the calculator-backed reports.
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.User, error)

	NutritionReport(ctx context.Context, userID primitive.ObjectID) (*NutritionReport, error)
	FitnessReport(ctx context.Context, userID primitive.ObjectID) (*FitnessReport, error)

	LogMeasurement(ctx context.Context, m *domain.BodyMeasurement) (*domain.BodyMeasurement, error)
	GetMeasurements(ctx context.Context, userID primitive.ObjectID) ([]domain.BodyMeasurement, error)
}

// profileService implements the ProfileService interface.
type profileService struct {
	userRepo        repository.UserRepository
	measurementRepo repository.MeasurementRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository, measurementRepo repository.MeasurementRepository) ProfileService {
	return &profileService{
		userRepo:        userRepo,
		measurementRepo: measurementRepo,
	}
}

// GetProfile retrieves the user's profile.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile replaces the biometric profile fields.
func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	user.Gender = update.Gender
	user.AgeYears = update.AgeYears
	user.HeightCm = update.HeightCm
	user.WeightKg = update.WeightKg
	user.BodyFatPercent = update.BodyFatPercent
	user.ActivityLevel = update.ActivityLevel
	user.Goal = update.Goal

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// NutritionReport runs the energy chain from the stored profile. The
// calculators themselves never fail: implausible stored values degrade to
// their documented fallbacks, so a report is always produced for a user that
// exists and has a gender set.
func (s *profileService) NutritionReport(ctx context.Context, userID primitive.ObjectID) (*NutritionReport, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Gender == "" {
		return nil, ErrProfileIncomplete
	}

	bmr := calc.BMR(user.Gender, user.AgeYears, user.HeightCm, user.WeightKg, user.BodyFatPercent)
	tdee := calc.TDEE(bmr, user.ActivityLevel.Multiplier())
	target := calc.DailyCalorieTarget(tdee, user.Goal.CalorieAdjustment())
	macros := calc.Macros(user.WeightKg, target, user.Goal.ProteinPerKg())

	return &NutritionReport{
		BMR:           bmr,
		TDEE:          tdee,
		CalorieTarget: target,
		Macros:        macros,
	}, nil
}

// FitnessReport estimates body fat from the latest measurement set (falling
// back to the body fat stored on the profile), then derives FFMI and the
// composite fitness level. Any field whose inputs are missing comes back nil
// rather than as a fabricated number.
func (s *profileService) FitnessReport(ctx context.Context, userID primitive.ObjectID) (*FitnessReport, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Gender == "" {
		return nil, ErrProfileIncomplete
	}

	bodyFat := user.BodyFatPercent
	weight := user.WeightKg

	latest, err := s.measurementRepo.GetLatestByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if latest != nil {
		if estimated := calc.BodyFatNavy(user.Gender, user.HeightCm, latest.NeckCm, latest.WaistCm, latest.HipCm); estimated != nil {
			bodyFat = estimated
		}
		if latest.WeightKg > 0 {
			weight = latest.WeightKg
		}
	}

	report := &FitnessReport{BodyFatPercent: bodyFat}
	ffmi := calc.NormalizedFFMI(weight, user.HeightCm, bodyFat)
	if ffmi != nil {
		report.NormalizedFFMI = ffmi
		category := calc.FFMIForCategory(*ffmi)
		report.FFMICategory = &category
	}
	report.Level = calc.CompositeFitnessScore(ffmi, bodyFat, user.Gender)

	return report, nil
}

// LogMeasurement stores a new body measurement set.
func (s *profileService) LogMeasurement(ctx context.Context, m *domain.BodyMeasurement) (*domain.BodyMeasurement, error) {
	if m.UserID == primitive.NilObjectID {
		return nil, errors.New("measurement user ID is required")
	}
	id, err := s.measurementRepo.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}

// GetMeasurements lists the user's measurement history, newest first.
func (s *profileService) GetMeasurements(ctx context.Context, userID primitive.ObjectID) ([]domain.BodyMeasurement, error) {
	return s.measurementRepo.GetByUserID(ctx, userID)
}
