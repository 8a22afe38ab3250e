package service

import (
	"context"
	"time"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository stubs. They keep the same ownership/not-found
// semantics as the mongo implementations so the services under test can't
// tell the difference.

type stubUserRepo struct {
	users    map[primitive.ObjectID]*domain.User
	lifetime []domain.LifetimeStats // Deltas received, in order
	failAcc  error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	user.ID = id
	r.users[id] = user
	return id, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) AccumulateLifetime(_ context.Context, userID primitive.ObjectID, delta domain.LifetimeStats) error {
	if r.failAcc != nil {
		return r.failAcc
	}
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Lifetime.TotalWorkouts += delta.TotalWorkouts
	u.Lifetime.TotalVolumeKg += delta.TotalVolumeKg
	u.Lifetime.TotalDurationSec += delta.TotalDurationSec
	u.Lifetime.TotalDistanceM += delta.TotalDistanceM
	r.lifetime = append(r.lifetime, delta)
	return nil
}

type stubMeasurementRepo struct {
	measurements []*domain.BodyMeasurement
}

func (r *stubMeasurementRepo) Create(_ context.Context, m *domain.BodyMeasurement) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	m.ID = id
	copied := *m
	r.measurements = append(r.measurements, &copied)
	return id, nil
}

func (r *stubMeasurementRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.BodyMeasurement, error) {
	for _, m := range r.measurements {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubMeasurementRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.BodyMeasurement, error) {
	var out []domain.BodyMeasurement
	for _, m := range r.measurements {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMeasurementRepo) GetLatestByUserID(_ context.Context, userID primitive.ObjectID) (*domain.BodyMeasurement, error) {
	var latest *domain.BodyMeasurement
	for _, m := range r.measurements {
		if m.UserID != userID {
			continue
		}
		if latest == nil || m.TakenAt.After(latest.TakenAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

type stubExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.Exercise
}

func newStubExerciseRepo() *stubExerciseRepo {
	return &stubExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (r *stubExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	exercise.ID = id
	copied := *exercise
	r.exercises[id] = &copied
	return id, nil
}

func (r *stubExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *stubExerciseRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, e := range r.exercises {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *exercise
	r.exercises[exercise.ID] = &copied
	return nil
}

func (r *stubExerciseRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	e, ok := r.exercises[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

type stubSessionRepo struct {
	sessions   map[primitive.ObjectID]*domain.WorkoutSession
	failUpdate error
	cleared    []domain.PRType // PR types passed to ClearPersonalRecord
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[primitive.ObjectID]*domain.WorkoutSession)}
}

func cloneSession(s *domain.WorkoutSession) *domain.WorkoutSession {
	copied := *s
	copied.Entries = make([]domain.LiftEntry, len(s.Entries))
	for i, e := range s.Entries {
		copied.Entries[i] = e
		copied.Entries[i].Sets = append([]domain.SetResult(nil), e.Sets...)
	}
	copied.CardioResults = append([]domain.CardioResult(nil), s.CardioResults...)
	return &copied
}

func (r *stubSessionRepo) Create(_ context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	session.ID = id
	r.sessions[id] = cloneSession(session)
	return id, nil
}

func (r *stubSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneSession(s), nil
}

func (r *stubSessionRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	var out []domain.WorkoutSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *cloneSession(s))
		}
	}
	return out, nil
}

func (r *stubSessionRepo) Update(_ context.Context, session *domain.WorkoutSession) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *stubSessionRepo) ListCompletedCardioResults(_ context.Context, userID, exerciseID primitive.ObjectID) ([]domain.CardioResult, error) {
	var out []domain.CardioResult
	for _, s := range r.sessions {
		if s.UserID != userID || s.Status != domain.SessionCompleted {
			continue
		}
		for _, res := range s.CardioResults {
			if res.ExerciseID == exerciseID && res.Completed {
				out = append(out, res)
			}
		}
	}
	return out, nil
}

func (r *stubSessionRepo) ClearPersonalRecord(_ context.Context, userID, exerciseID primitive.ObjectID, prType domain.PRType) error {
	r.cleared = append(r.cleared, prType)
	for _, s := range r.sessions {
		if s.UserID != userID {
			continue
		}
		for i := range s.CardioResults {
			res := &s.CardioResults[i]
			if res.ExerciseID == exerciseID && res.PersonalRecordType == prType {
				res.IsPersonalRecord = false
				res.PersonalRecordType = ""
			}
		}
	}
	return nil
}

type stubProgramRepo struct {
	templates  map[primitive.ObjectID]*domain.ProgramTemplate
	executions map[primitive.ObjectID]*domain.ProgramExecution
}

func newStubProgramRepo() *stubProgramRepo {
	return &stubProgramRepo{
		templates:  make(map[primitive.ObjectID]*domain.ProgramTemplate),
		executions: make(map[primitive.ObjectID]*domain.ProgramExecution),
	}
}

func (r *stubProgramRepo) CreateTemplate(_ context.Context, tmpl *domain.ProgramTemplate) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	tmpl.ID = id
	copied := *tmpl
	r.templates[id] = &copied
	return id, nil
}

func (r *stubProgramRepo) GetTemplateByID(_ context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *stubProgramRepo) GetTemplatesByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.ProgramTemplate, error) {
	var out []domain.ProgramTemplate
	for _, t := range r.templates {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubProgramRepo) CreateExecution(_ context.Context, exec *domain.ProgramExecution) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	exec.ID = id
	copied := *exec
	r.executions[id] = &copied
	return id, nil
}

func (r *stubProgramRepo) GetExecutionByID(_ context.Context, id primitive.ObjectID) (*domain.ProgramExecution, error) {
	e, ok := r.executions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	copied.CompletedSessionIDs = append([]primitive.ObjectID(nil), e.CompletedSessionIDs...)
	return &copied, nil
}

func (r *stubProgramRepo) GetExecutionsByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.ProgramExecution, error) {
	var out []domain.ProgramExecution
	for _, e := range r.executions {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubProgramRepo) UpdateExecution(_ context.Context, exec *domain.ProgramExecution) error {
	if _, ok := r.executions[exec.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *exec
	copied.CompletedSessionIDs = append([]primitive.ObjectID(nil), exec.CompletedSessionIDs...)
	r.executions[exec.ID] = &copied
	return nil
}

type stubPhotoRepo struct {
	photos map[primitive.ObjectID]*domain.ProgressPhoto
}

func newStubPhotoRepo() *stubPhotoRepo {
	return &stubPhotoRepo{photos: make(map[primitive.ObjectID]*domain.ProgressPhoto)}
}

func (r *stubPhotoRepo) Create(_ context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	photo.ID = id
	copied := *photo
	r.photos[id] = &copied
	return id, nil
}

func (r *stubPhotoRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *stubPhotoRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.ProgressPhoto, error) {
	var out []domain.ProgressPhoto
	for _, p := range r.photos {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPhotoRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	p, ok := r.photos[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

type stubFileStorage struct {
	deleted []string
	failerr error
}

func (s *stubFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	if s.failerr != nil {
		return "", s.failerr
	}
	return "https://storage.example/upload/" + objectKey, nil
}

func (s *stubFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if s.failerr != nil {
		return "", s.failerr
	}
	return "https://storage.example/download/" + objectKey, nil
}

func (s *stubFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	if s.failerr != nil {
		return s.failerr
	}
	s.deleted = append(s.deleted, objectKey)
	return nil
}

type stubExporter struct {
	exported []primitive.ObjectID
	err      error
}

func (e *stubExporter) ExportSession(_ context.Context, session *domain.WorkoutSession) error {
	if e.err != nil {
		return e.err
	}
	e.exported = append(e.exported, session.ID)
	return nil
}
