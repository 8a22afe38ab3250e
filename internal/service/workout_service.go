package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/healthsync"
	"alcyxob/reptrack/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound         = errors.New("workout session not found")
	ErrSessionAccessDenied     = errors.New("access denied to this workout session")
	ErrSessionAlreadyCompleted = errors.New("workout session is already completed")
	ErrInvalidEntryIndex       = errors.New("exercise entry index out of range")
	ErrSessionKindMismatch     = errors.New("operation does not apply to this session kind")
)

// WorkoutService drives the session lifecycle: start, log results, manual
// edits, and completion with personal-record detection, lifetime stat
// accumulation and best-effort health platform export.
type WorkoutService interface {
	StartSession(ctx context.Context, userID primitive.ObjectID, kind domain.ExerciseKind, executionID *primitive.ObjectID, exerciseIDs []primitive.ObjectID) (*domain.WorkoutSession, error)
	GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
	GetSessions(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)

	LogSet(ctx context.Context, userID, sessionID primitive.ObjectID, entryIndex int, set domain.SetResult) (*domain.WorkoutSession, error)
	LogCardioResult(ctx context.Context, userID, sessionID primitive.ObjectID, result domain.CardioResult) (*domain.WorkoutSession, error)

	OverrideDuration(ctx context.Context, userID, sessionID primitive.ObjectID, durationSec int) (*domain.WorkoutSession, error)
	OverrideDistance(ctx context.Context, userID, sessionID primitive.ObjectID, distanceM float64) (*domain.WorkoutSession, error)
	OverrideCalories(ctx context.Context, userID, sessionID primitive.ObjectID, calories int) (*domain.WorkoutSession, error)

	CompleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	sessionRepo  repository.SessionRepository
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	programRepo  repository.ProgramRepository
	exporter     healthsync.Exporter
	log          *logrus.Logger
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	programRepo repository.ProgramRepository,
	exporter healthsync.Exporter,
	log *logrus.Logger,
) WorkoutService {
	return &workoutService{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		programRepo:  programRepo,
		exporter:     exporter,
		log:          log,
	}
}

// StartSession creates a new in-progress session. For lift sessions the
// exercise IDs seed one empty entry per exercise; cardio sessions start
// empty and accumulate results as they are logged. When executionID is set
// the session is bound to that program execution.
func (s *workoutService) StartSession(ctx context.Context, userID primitive.ObjectID, kind domain.ExerciseKind, executionID *primitive.ObjectID, exerciseIDs []primitive.ObjectID) (*domain.WorkoutSession, error) {
	if kind != domain.ExerciseLift && kind != domain.ExerciseCardio {
		return nil, ErrSessionKindMismatch
	}

	if executionID != nil {
		exec, err := s.programRepo.GetExecutionByID(ctx, *executionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExecutionNotFound
			}
			return nil, err
		}
		if exec.UserID != userID {
			return nil, ErrExecutionAccessDenied
		}
		if exec.IsCompleted {
			return nil, ErrExecutionCompleted
		}
	}

	session := &domain.WorkoutSession{
		UserID:      userID,
		ExecutionID: executionID,
		Kind:        kind,
		Status:      domain.SessionInProgress,
		StartedAt:   time.Now().UTC(),
	}

	if kind == domain.ExerciseLift {
		for _, exerciseID := range exerciseIDs {
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
			session.Entries = append(session.Entries, domain.LiftEntry{
				ExerciseID:   exercise.ID,
				ExerciseName: exercise.Name,
			})
		}
	}

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID
	return session, nil
}

// GetSession retrieves one session, enforcing ownership.
func (s *workoutService) GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	return s.getOwnedSession(ctx, userID, sessionID)
}

// GetSessions lists the user's sessions, newest first.
func (s *workoutService) GetSessions(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.GetByUserID(ctx, userID)
}

func (s *workoutService) getOwnedSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionAccessDenied
	}
	return session, nil
}

func (s *workoutService) getMutableSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.SessionCompleted {
		return nil, ErrSessionAlreadyCompleted
	}
	return session, nil
}

// LogSet appends a set to a lift entry and refreshes the aggregates. A
// failing save propagates to the caller; the in-memory session keeps the
// logged set, the caller decides whether to retry.
func (s *workoutService) LogSet(ctx context.Context, userID, sessionID primitive.ObjectID, entryIndex int, set domain.SetResult) (*domain.WorkoutSession, error) {
	session, err := s.getMutableSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Kind != domain.ExerciseLift {
		return nil, ErrSessionKindMismatch
	}
	if entryIndex < 0 || entryIndex >= len(session.Entries) {
		return nil, ErrInvalidEntryIndex
	}

	session.Entries[entryIndex].Sets = append(session.Entries[entryIndex].Sets, set)
	session.Recalculate()

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// LogCardioResult appends a cardio effort and refreshes the aggregates.
func (s *workoutService) LogCardioResult(ctx context.Context, userID, sessionID primitive.ObjectID, result domain.CardioResult) (*domain.WorkoutSession, error) {
	session, err := s.getMutableSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Kind != domain.ExerciseCardio {
		return nil, ErrSessionKindMismatch
	}

	// PR flags are derived at session completion, never trusted from input.
	result.IsPersonalRecord = false
	result.PersonalRecordType = ""
	if result.Completed && result.CompletedAt == nil {
		now := time.Now().UTC()
		result.CompletedAt = &now
	}

	session.CardioResults = append(session.CardioResults, result)
	session.Recalculate()

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// OverrideDuration sets the total duration by hand and locks the field
// against automatic recomputation. The other aggregates are unaffected.
func (s *workoutService) OverrideDuration(ctx context.Context, userID, sessionID primitive.ObjectID, durationSec int) (*domain.WorkoutSession, error) {
	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.TotalDurationSec = durationSec
	session.Overrides.Duration = true

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// OverrideDistance sets the total distance by hand and locks the field.
func (s *workoutService) OverrideDistance(ctx context.Context, userID, sessionID primitive.ObjectID, distanceM float64) (*domain.WorkoutSession, error) {
	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.TotalDistanceM = distanceM
	session.Overrides.Distance = true

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// OverrideCalories sets the calorie total by hand and locks the field.
func (s *workoutService) OverrideCalories(ctx context.Context, userID, sessionID primitive.ObjectID, calories int) (*domain.WorkoutSession, error) {
	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.TotalCalories = calories
	session.Overrides.Calories = true

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteSession finalizes the session: totals freeze, cardio results are
// checked for personal records, lifetime stats accumulate, the owning
// program execution (if any) advances one day, and the session exports to
// the health platform on a best-effort basis.
func (s *workoutService) CompleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.getMutableSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	// Detect PRs against prior completed results before this session itself
	// becomes visible as completed.
	if session.Kind == domain.ExerciseCardio {
		if err := s.detectPersonalRecords(ctx, session); err != nil {
			return nil, err
		}
	}

	session.Complete(time.Now().UTC())

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	// Lifetime aggregates are append-only; a completed session adds and
	// nothing ever subtracts.
	delta := domain.LifetimeStats{
		TotalWorkouts:    1,
		TotalVolumeKg:    session.TotalVolumeKg,
		TotalDurationSec: session.TotalDurationSec,
		TotalDistanceM:   session.TotalDistanceM,
	}
	if err := s.userRepo.AccumulateLifetime(ctx, userID, delta); err != nil {
		return nil, err
	}

	if session.ExecutionID != nil {
		if err := s.advanceExecution(ctx, userID, *session.ExecutionID, session.ID); err != nil {
			return nil, err
		}
	}

	// Health platform sync is best effort: the session is complete once
	// local persistence succeeded, so export failures are only logged.
	if err := s.exporter.ExportSession(ctx, session); err != nil {
		s.log.WithError(err).WithField("sessionId", session.ID.Hex()).
			Warn("health platform export failed")
	}

	return session, nil
}

// detectPersonalRecords flags each completed cardio result that beats every
// prior completed result for its exercise, including earlier results of the
// session being completed. The record metric follows the exercise's target
// type. Flagging a new record clears the previous holder of the same type,
// stored or in this session, so per exercise and type exactly one result
// holds it.
func (s *workoutService) detectPersonalRecords(ctx context.Context, session *domain.WorkoutSession) error {
	for i := range session.CardioResults {
		result := &session.CardioResults[i]
		if !result.Completed {
			continue
		}

		exercise, err := s.exerciseRepo.GetByID(ctx, result.ExerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // Exercise was deleted; nothing to record against.
			}
			return err
		}

		prior, err := s.sessionRepo.ListCompletedCardioResults(ctx, session.UserID, result.ExerciseID)
		if err != nil {
			return err
		}
		// Earlier results of this session compete too; the completed-session
		// query cannot see them while the session is still in progress.
		for j := 0; j < i; j++ {
			if earlier := session.CardioResults[j]; earlier.Completed && earlier.ExerciseID == result.ExerciseID {
				prior = append(prior, earlier)
			}
		}

		prType, isRecord := evaluateRecord(exercise.CardioTarget, *result, prior)
		if !isRecord {
			continue
		}

		if err := s.sessionRepo.ClearPersonalRecord(ctx, session.UserID, result.ExerciseID, prType); err != nil {
			return err
		}
		// A beaten earlier result of this session may already carry the flag;
		// the database clear cannot reach it.
		for j := 0; j < i; j++ {
			earlier := &session.CardioResults[j]
			if earlier.ExerciseID == result.ExerciseID && earlier.PersonalRecordType == prType {
				earlier.IsPersonalRecord = false
				earlier.PersonalRecordType = ""
			}
		}
		result.IsPersonalRecord = true
		result.PersonalRecordType = prType
	}
	return nil
}

// evaluateRecord decides whether the candidate beats every prior result on
// the metric its exercise target dictates. Ties go to the earlier holder.
func evaluateRecord(target domain.CardioTarget, candidate domain.CardioResult, prior []domain.CardioResult) (domain.PRType, bool) {
	switch target {
	case domain.TargetDistance:
		// Fixed distance: the record is the fastest completion.
		for _, p := range prior {
			if p.DurationSec <= candidate.DurationSec {
				return "", false
			}
		}
		return domain.PRFastestTime, true
	case domain.TargetTime:
		// Fixed time: the record is the longest distance covered.
		for _, p := range prior {
			if p.DistanceM >= candidate.DistanceM {
				return "", false
			}
		}
		return domain.PRLongestDistance, true
	case domain.TargetOpen:
		// Unconstrained: the record is the best (lowest) pace. Results that
		// covered no distance have no pace and never hold this record.
		pace := candidate.PaceSecPerKm()
		if pace <= 0 {
			return "", false
		}
		for _, p := range prior {
			if prev := p.PaceSecPerKm(); prev > 0 && prev <= pace {
				return "", false
			}
		}
		return domain.PRBestPace, true
	default:
		return "", false
	}
}

// advanceExecution records the completed session on its execution and moves
// the day/week pointer, honoring the terminal completed state.
func (s *workoutService) advanceExecution(ctx context.Context, userID, executionID, sessionID primitive.ObjectID) error {
	exec, err := s.programRepo.GetExecutionByID(ctx, executionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExecutionNotFound
		}
		return err
	}
	if exec.UserID != userID {
		return ErrExecutionAccessDenied
	}

	exec.CompletedSessionIDs = append(exec.CompletedSessionIDs, sessionID)

	tmpl, err := s.programRepo.GetTemplateByID(ctx, exec.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}

	exec.Advance(tmpl.DaysPerWeek, tmpl.Weeks, time.Now().UTC())
	return s.programRepo.UpdateExecution(ctx, exec)
}
