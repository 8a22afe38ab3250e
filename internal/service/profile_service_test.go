package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/reptrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture(t *testing.T, user domain.User) (ProfileService, *stubUserRepo, *stubMeasurementRepo, domain.User) {
	t.Helper()
	userRepo := newStubUserRepo()
	measurementRepo := &stubMeasurementRepo{}
	id, err := userRepo.Create(context.Background(), &user)
	require.NoError(t, err)
	user.ID = id
	return NewProfileService(userRepo, measurementRepo), userRepo, measurementRepo, user
}

func TestNutritionReportChainsTheCalculators(t *testing.T) {
	svc, _, _, user := newProfileFixture(t, domain.User{
		Name: "Sam", Email: "sam@example.com",
		Gender: domain.GenderMale, AgeYears: 30, HeightCm: 180, WeightKg: 80,
		ActivityLevel: domain.ActivityModeratelyActive, Goal: domain.GoalCut,
	})

	report, err := svc.NutritionReport(context.Background(), user.ID)
	require.NoError(t, err)

	// Mifflin-St Jeor: 10*80 + 6.25*180 - 5*30 + 5 = 1780.
	assert.InDelta(t, 1780.0, report.BMR, 1e-9)
	assert.InDelta(t, 1780.0*1.55, report.TDEE, 1e-9)
	assert.InDelta(t, 1780.0*1.55*0.8, report.CalorieTarget, 1e-9)
	// Cut: 2.2 g protein per kg body weight.
	assert.InDelta(t, 176.0, report.Macros.ProteinG, 1e-9)
}

func TestNutritionReportRequiresGender(t *testing.T) {
	svc, _, _, user := newProfileFixture(t, domain.User{
		Name: "Sam", Email: "sam@example.com", AgeYears: 30, HeightCm: 180, WeightKg: 80,
	})

	_, err := svc.NutritionReport(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrProfileIncomplete)
}

func TestFitnessReportPrefersMeasurementEstimate(t *testing.T) {
	profileBF := 30.0
	svc, _, measurementRepo, user := newProfileFixture(t, domain.User{
		Name: "Sam", Email: "sam@example.com",
		Gender: domain.GenderMale, AgeYears: 30, HeightCm: 180, WeightKg: 80,
		BodyFatPercent: &profileBF,
	})

	neck, waist := 38.0, 85.0
	_, err := measurementRepo.Create(context.Background(), &domain.BodyMeasurement{
		UserID: user.ID, NeckCm: &neck, WaistCm: &waist, WeightKg: 82, TakenAt: time.Now(),
	})
	require.NoError(t, err)

	report, err := svc.FitnessReport(context.Background(), user.ID)
	require.NoError(t, err)

	// The tape-measure estimate wins over the self-reported profile value.
	require.NotNil(t, report.BodyFatPercent)
	assert.Less(t, *report.BodyFatPercent, profileBF)
	require.NotNil(t, report.NormalizedFFMI)
	require.NotNil(t, report.FFMICategory)
	require.NotNil(t, report.Level)
}

func TestFitnessReportNilFieldsWhenInputsMissing(t *testing.T) {
	svc, _, _, user := newProfileFixture(t, domain.User{
		Name: "Sam", Email: "sam@example.com",
		Gender: domain.GenderFemale, AgeYears: 28, HeightCm: 165, WeightKg: 60,
	})

	// No body fat from anywhere: FFMI and its category are unavailable, and
	// the report says so with nils instead of fabricated zeros.
	report, err := svc.FitnessReport(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, report.BodyFatPercent)
	assert.Nil(t, report.NormalizedFFMI)
	assert.Nil(t, report.FFMICategory)
	assert.Nil(t, report.Level)
}

func TestUpdateProfileRoundTrips(t *testing.T) {
	svc, userRepo, _, user := newProfileFixture(t, domain.User{
		Name: "Sam", Email: "sam@example.com",
	})

	bf := 18.0
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{
		Gender: domain.GenderMale, AgeYears: 31, HeightCm: 181, WeightKg: 83,
		BodyFatPercent: &bf, ActivityLevel: domain.ActivityLightlyActive, Goal: domain.GoalBulk,
	})
	require.NoError(t, err)
	assert.Equal(t, 31, updated.AgeYears)
	assert.Empty(t, updated.PasswordHash)

	stored, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalBulk, stored.Goal)
	require.NotNil(t, stored.BodyFatPercent)
	assert.Equal(t, 18.0, *stored.BodyFatPercent)
}
