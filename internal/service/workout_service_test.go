package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"alcyxob/reptrack/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutFixture struct {
	userID       primitive.ObjectID
	userRepo     *stubUserRepo
	exerciseRepo *stubExerciseRepo
	sessionRepo  *stubSessionRepo
	programRepo  *stubProgramRepo
	exporter     *stubExporter
	svc          WorkoutService
}

func newWorkoutFixture(t *testing.T) *workoutFixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &workoutFixture{
		userRepo:     newStubUserRepo(),
		exerciseRepo: newStubExerciseRepo(),
		sessionRepo:  newStubSessionRepo(),
		programRepo:  newStubProgramRepo(),
		exporter:     &stubExporter{},
	}
	f.svc = NewWorkoutService(f.sessionRepo, f.userRepo, f.exerciseRepo, f.programRepo, f.exporter, log)

	id, err := f.userRepo.Create(context.Background(), &domain.User{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)
	f.userID = id
	return f
}

func (f *workoutFixture) addCardioExercise(t *testing.T, target domain.CardioTarget, targetValue float64) primitive.ObjectID {
	t.Helper()
	id, err := f.exerciseRepo.Create(context.Background(), &domain.Exercise{
		UserID:       f.userID,
		Name:         "test cardio",
		Kind:         domain.ExerciseCardio,
		CardioTarget: target,
		TargetValue:  targetValue,
	})
	require.NoError(t, err)
	return id
}

// seedCompletedCardioSession inserts an already-completed session holding a
// single cardio result, optionally flagged as the current record holder.
func (f *workoutFixture) seedCompletedCardioSession(t *testing.T, exerciseID primitive.ObjectID, result domain.CardioResult, holds domain.PRType) primitive.ObjectID {
	t.Helper()
	result.ExerciseID = exerciseID
	result.Completed = true
	if holds != "" {
		result.IsPersonalRecord = true
		result.PersonalRecordType = holds
	}
	done := time.Now().Add(-24 * time.Hour)
	id, err := f.sessionRepo.Create(context.Background(), &domain.WorkoutSession{
		UserID:        f.userID,
		Kind:          domain.ExerciseCardio,
		Status:        domain.SessionCompleted,
		StartedAt:     done.Add(-time.Hour),
		CompletedAt:   &done,
		CardioResults: []domain.CardioResult{result},
	})
	require.NoError(t, err)
	return id
}

func (f *workoutFixture) startCardioSession(t *testing.T) *domain.WorkoutSession {
	t.Helper()
	session, err := f.svc.StartSession(context.Background(), f.userID, domain.ExerciseCardio, nil, nil)
	require.NoError(t, err)
	return session
}

func TestStartSessionSeedsLiftEntries(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	squatID, err := f.exerciseRepo.Create(ctx, &domain.Exercise{UserID: f.userID, Name: "Back Squat", Kind: domain.ExerciseLift})
	require.NoError(t, err)
	benchID, err := f.exerciseRepo.Create(ctx, &domain.Exercise{UserID: f.userID, Name: "Bench Press", Kind: domain.ExerciseLift})
	require.NoError(t, err)

	session, err := f.svc.StartSession(ctx, f.userID, domain.ExerciseLift, nil, []primitive.ObjectID{squatID, benchID})
	require.NoError(t, err)

	require.Len(t, session.Entries, 2)
	assert.Equal(t, "Back Squat", session.Entries[0].ExerciseName)
	assert.Equal(t, "Bench Press", session.Entries[1].ExerciseName)
	assert.Equal(t, domain.SessionInProgress, session.Status)
}

func TestStartSessionRejectsForeignExercise(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	otherID, err := f.exerciseRepo.Create(ctx, &domain.Exercise{UserID: primitive.NewObjectID(), Name: "Deadlift", Kind: domain.ExerciseLift})
	require.NoError(t, err)

	_, err = f.svc.StartSession(ctx, f.userID, domain.ExerciseLift, nil, []primitive.ObjectID{otherID})
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)
}

func TestLogSetInvalidEntryIndex(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.userID, domain.ExerciseLift, nil, nil)
	require.NoError(t, err)

	_, err = f.svc.LogSet(ctx, f.userID, session.ID, 0, domain.SetResult{WeightKg: 100, Reps: 5, Completed: true})
	assert.ErrorIs(t, err, ErrInvalidEntryIndex)
}

func TestManualOverrideSuppressesOnlyThatField(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetOpen, 0)

	session := f.startCardioSession(t)
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 5000, DurationSec: 1500, Completed: true,
	})
	require.NoError(t, err)

	// Pin the duration by hand.
	updated, err := f.svc.OverrideDuration(ctx, f.userID, session.ID, 900)
	require.NoError(t, err)
	assert.Equal(t, 900, updated.TotalDurationSec)

	// A further result leaves the pinned duration alone but keeps the other
	// aggregates recomputing.
	updated, err = f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 3000, DurationSec: 1000, Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 900, updated.TotalDurationSec)
	assert.Equal(t, 8000.0, updated.TotalDistanceM)
}

func TestCompleteSessionFastestTimeRecord(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetDistance, 5000)

	priorID := f.seedCompletedCardioSession(t, exerciseID, domain.CardioResult{
		DistanceM: 5000, DurationSec: 1300,
	}, domain.PRFastestTime)

	session := f.startCardioSession(t)
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 5000, DurationSec: 1200, Completed: true,
	})
	require.NoError(t, err)

	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)

	require.Len(t, completed.CardioResults, 1)
	assert.True(t, completed.CardioResults[0].IsPersonalRecord)
	assert.Equal(t, domain.PRFastestTime, completed.CardioResults[0].PersonalRecordType)

	// The previous holder lost the flag: per exercise and record type there
	// is exactly one holder.
	prior, err := f.sessionRepo.GetByID(ctx, priorID)
	require.NoError(t, err)
	assert.False(t, prior.CardioResults[0].IsPersonalRecord)
	assert.Empty(t, prior.CardioResults[0].PersonalRecordType)
	assert.Contains(t, f.sessionRepo.cleared, domain.PRFastestTime)
}

func TestCompleteSessionSingleHolderWithinOneSession(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetDistance, 5000)

	// Two completed efforts for the same exercise in one session: only the
	// faster one may end up holding fastest_time, regardless of log order.
	session := f.startCardioSession(t)
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 5000, DurationSec: 1200, Completed: true,
	})
	require.NoError(t, err)
	_, err = f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 5000, DurationSec: 1400, Completed: true,
	})
	require.NoError(t, err)

	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)

	require.Len(t, completed.CardioResults, 2)
	assert.True(t, completed.CardioResults[0].IsPersonalRecord)
	assert.Equal(t, domain.PRFastestTime, completed.CardioResults[0].PersonalRecordType)
	assert.False(t, completed.CardioResults[1].IsPersonalRecord, "the slower result must not hold the record")

	holders := 0
	for _, r := range completed.CardioResults {
		if r.IsPersonalRecord {
			holders++
		}
	}
	assert.Equal(t, 1, holders)
}

func TestCompleteSessionLaterResultTakesRecordFromEarlier(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetDistance, 5000)

	session := f.startCardioSession(t)
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 5000, DurationSec: 1400, Completed: true,
	})
	require.NoError(t, err)
	_, err = f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 5000, DurationSec: 1200, Completed: true,
	})
	require.NoError(t, err)

	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)

	// The faster second effort takes the record; the first loses the flag it
	// briefly earned against an empty history.
	require.Len(t, completed.CardioResults, 2)
	assert.False(t, completed.CardioResults[0].IsPersonalRecord)
	assert.Empty(t, completed.CardioResults[0].PersonalRecordType)
	assert.True(t, completed.CardioResults[1].IsPersonalRecord)
	assert.Equal(t, domain.PRFastestTime, completed.CardioResults[1].PersonalRecordType)

	// The persisted document agrees with the in-memory session.
	stored, err := f.sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, stored.CardioResults[0].IsPersonalRecord)
	assert.True(t, stored.CardioResults[1].IsPersonalRecord)
}

func TestCompleteSessionSlowerTimeIsNoRecord(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetDistance, 5000)

	f.seedCompletedCardioSession(t, exerciseID, domain.CardioResult{
		DistanceM: 5000, DurationSec: 1300,
	}, domain.PRFastestTime)

	session := f.startCardioSession(t)
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 5000, DurationSec: 1400, Completed: true,
	})
	require.NoError(t, err)

	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)

	assert.False(t, completed.CardioResults[0].IsPersonalRecord)
	assert.Empty(t, f.sessionRepo.cleared)
}

func TestCompleteSessionTieGoesToEarlierHolder(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetDistance, 5000)

	f.seedCompletedCardioSession(t, exerciseID, domain.CardioResult{
		DistanceM: 5000, DurationSec: 1300,
	}, domain.PRFastestTime)

	session := f.startCardioSession(t)
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 5000, DurationSec: 1300, Completed: true,
	})
	require.NoError(t, err)

	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)
	assert.False(t, completed.CardioResults[0].IsPersonalRecord)
}

func TestCompleteSessionLongestDistanceRecord(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetTime, 1800)

	f.seedCompletedCardioSession(t, exerciseID, domain.CardioResult{
		DistanceM: 6000, DurationSec: 1800,
	}, domain.PRLongestDistance)

	session := f.startCardioSession(t)
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 6500, DurationSec: 1800, Completed: true,
	})
	require.NoError(t, err)

	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)
	assert.True(t, completed.CardioResults[0].IsPersonalRecord)
	assert.Equal(t, domain.PRLongestDistance, completed.CardioResults[0].PersonalRecordType)
}

func TestCompleteSessionBestPaceExcludesZeroDistance(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetOpen, 0)

	session := f.startCardioSession(t)
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 0, DurationSec: 600, Completed: true,
	})
	require.NoError(t, err)

	// No prior results at all, but a zero-distance effort has no pace and
	// can never hold the pace record.
	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)
	assert.False(t, completed.CardioResults[0].IsPersonalRecord)
}

func TestCompleteSessionBestPaceRecord(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	exerciseID := f.addCardioExercise(t, domain.TargetOpen, 0)

	// Prior pace: 1500s / 5km = 300 s/km.
	f.seedCompletedCardioSession(t, exerciseID, domain.CardioResult{
		DistanceM: 5000, DurationSec: 1500,
	}, domain.PRBestPace)

	session := f.startCardioSession(t)
	// New pace: 870s / 3km = 290 s/km, faster despite the shorter run.
	_, err := f.svc.LogCardioResult(ctx, f.userID, session.ID, domain.CardioResult{
		ExerciseID: exerciseID, DistanceM: 3000, DurationSec: 870, Completed: true,
	})
	require.NoError(t, err)

	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)
	assert.True(t, completed.CardioResults[0].IsPersonalRecord)
	assert.Equal(t, domain.PRBestPace, completed.CardioResults[0].PersonalRecordType)
}

func TestCompleteSessionAccumulatesLifetimeStats(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	exerciseID, err := f.exerciseRepo.Create(ctx, &domain.Exercise{UserID: f.userID, Name: "Back Squat", Kind: domain.ExerciseLift})
	require.NoError(t, err)

	session, err := f.svc.StartSession(ctx, f.userID, domain.ExerciseLift, nil, []primitive.ObjectID{exerciseID})
	require.NoError(t, err)
	_, err = f.svc.LogSet(ctx, f.userID, session.ID, 0, domain.SetResult{WeightKg: 100, Reps: 5, Completed: true})
	require.NoError(t, err)
	_, err = f.svc.LogSet(ctx, f.userID, session.ID, 0, domain.SetResult{WeightKg: 100, Reps: 3, Completed: true})
	require.NoError(t, err)

	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 800.0, completed.TotalVolumeKg)

	user, err := f.userRepo.GetByID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, user.Lifetime.TotalWorkouts)
	assert.Equal(t, 800.0, user.Lifetime.TotalVolumeKg)
	assert.Equal(t, completed.TotalDurationSec, user.Lifetime.TotalDurationSec)
}

func TestCompleteSessionIsTerminal(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	session := f.startCardioSession(t)
	_, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)

	_, err = f.svc.CompleteSession(ctx, f.userID, session.ID)
	assert.ErrorIs(t, err, ErrSessionAlreadyCompleted)

	// Lifetime stats accumulated exactly once.
	assert.Len(t, f.userRepo.lifetime, 1)
}

func TestCompleteSessionSaveFailurePropagates(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	session := f.startCardioSession(t)
	saveErr := errors.New("write concern error")
	f.sessionRepo.failUpdate = saveErr

	_, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	assert.ErrorIs(t, err, saveErr)

	// Nothing downstream of the failed save ran.
	assert.Empty(t, f.userRepo.lifetime)
	assert.Empty(t, f.exporter.exported)

	// The stored session is still in progress, so the user can retry.
	stored, err := f.sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionInProgress, stored.Status)
}

func TestCompleteSessionExportFailureIsNonFatal(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()
	f.exporter.err = errors.New("platform unreachable")

	session := f.startCardioSession(t)
	completed, err := f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, completed.Status)
}

func TestCompleteSessionAdvancesExecution(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	tmplID, err := f.programRepo.CreateTemplate(ctx, &domain.ProgramTemplate{
		UserID: f.userID, Name: "Base Block", Weeks: 1, DaysPerWeek: 2,
	})
	require.NoError(t, err)
	execID, err := f.programRepo.CreateExecution(ctx, &domain.ProgramExecution{
		UserID: f.userID, ProgramID: tmplID, CurrentWeek: 1, CurrentDay: 1, StartedAt: time.Now(),
	})
	require.NoError(t, err)

	session, err := f.svc.StartSession(ctx, f.userID, domain.ExerciseCardio, &execID, nil)
	require.NoError(t, err)
	_, err = f.svc.CompleteSession(ctx, f.userID, session.ID)
	require.NoError(t, err)

	exec, err := f.programRepo.GetExecutionByID(ctx, execID)
	require.NoError(t, err)
	assert.Equal(t, 1, exec.CurrentWeek)
	assert.Equal(t, 2, exec.CurrentDay)
	assert.False(t, exec.IsCompleted)
	assert.Contains(t, exec.CompletedSessionIDs, session.ID)

	// The last day of the last week ends the execution.
	session2, err := f.svc.StartSession(ctx, f.userID, domain.ExerciseCardio, &execID, nil)
	require.NoError(t, err)
	_, err = f.svc.CompleteSession(ctx, f.userID, session2.ID)
	require.NoError(t, err)

	exec, err = f.programRepo.GetExecutionByID(ctx, execID)
	require.NoError(t, err)
	assert.True(t, exec.IsCompleted)
	require.NotNil(t, exec.EndedAt)
	assert.Equal(t, 1, exec.CurrentWeek)
	assert.Equal(t, 2, exec.CurrentDay)
}

func TestStartSessionRejectsCompletedExecution(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	tmplID, err := f.programRepo.CreateTemplate(ctx, &domain.ProgramTemplate{
		UserID: f.userID, Name: "Base Block", Weeks: 1, DaysPerWeek: 1,
	})
	require.NoError(t, err)
	execID, err := f.programRepo.CreateExecution(ctx, &domain.ProgramExecution{
		UserID: f.userID, ProgramID: tmplID, CurrentWeek: 1, CurrentDay: 1,
		IsCompleted: true, StartedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = f.svc.StartSession(ctx, f.userID, domain.ExerciseCardio, &execID, nil)
	assert.ErrorIs(t, err, ErrExecutionCompleted)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	session := f.startCardioSession(t)
	stranger := primitive.NewObjectID()

	_, err := f.svc.GetSession(ctx, stranger, session.ID)
	assert.ErrorIs(t, err, ErrSessionAccessDenied)
	_, err = f.svc.CompleteSession(ctx, stranger, session.ID)
	assert.ErrorIs(t, err, ErrSessionAccessDenied)
}
