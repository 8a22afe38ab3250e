package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound       = errors.New("program template not found")
	ErrProgramAccessDenied   = errors.New("access denied to this program template")
	ErrExecutionNotFound     = errors.New("program execution not found")
	ErrExecutionAccessDenied = errors.New("access denied to this program execution")
	ErrExecutionCompleted    = errors.New("program execution is already completed")
	ErrProgramInvalid        = errors.New("program template validation failed")
)

// ProgramService manages program templates and the user's runs through them.
type ProgramService interface {
	CreateTemplate(ctx context.Context, tmpl *domain.ProgramTemplate) (*domain.ProgramTemplate, error)
	GetTemplate(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.ProgramTemplate, error)
	GetTemplates(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgramTemplate, error)

	StartExecution(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.ProgramExecution, error)
	GetExecution(ctx context.Context, userID, executionID primitive.ObjectID) (*domain.ProgramExecution, error)
	GetExecutions(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgramExecution, error)
	AdvanceExecution(ctx context.Context, userID, executionID primitive.ObjectID) (*domain.ProgramExecution, error)
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo repository.ProgramRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(programRepo repository.ProgramRepository) ProgramService {
	return &programService{programRepo: programRepo}
}

func validateTemplate(tmpl *domain.ProgramTemplate) error {
	if tmpl.Name == "" || tmpl.Weeks < 1 || tmpl.DaysPerWeek < 1 {
		return ErrProgramInvalid
	}
	if len(tmpl.Days) > tmpl.DaysPerWeek {
		return ErrProgramInvalid
	}
	for _, day := range tmpl.Days {
		if day.DayNumber < 1 || day.DayNumber > tmpl.DaysPerWeek {
			return ErrProgramInvalid
		}
	}
	return nil
}

// CreateTemplate stores a new program template for the user.
func (s *programService) CreateTemplate(ctx context.Context, tmpl *domain.ProgramTemplate) (*domain.ProgramTemplate, error) {
	if tmpl.UserID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a program template")
	}
	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	templateID, err := s.programRepo.CreateTemplate(ctx, tmpl)
	if err != nil {
		return nil, err
	}
	tmpl.ID = templateID
	return tmpl, nil
}

// GetTemplate retrieves one template, enforcing ownership.
func (s *programService) GetTemplate(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.ProgramTemplate, error) {
	tmpl, err := s.programRepo.GetTemplateByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if tmpl.UserID != userID {
		return nil, ErrProgramAccessDenied
	}
	return tmpl, nil
}

// GetTemplates lists the user's program templates.
func (s *programService) GetTemplates(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgramTemplate, error) {
	return s.programRepo.GetTemplatesByUserID(ctx, userID)
}

// StartExecution begins a new run through a template at week 1, day 1.
func (s *programService) StartExecution(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.ProgramExecution, error) {
	tmpl, err := s.GetTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	exec := &domain.ProgramExecution{
		UserID:      userID,
		ProgramID:   tmpl.ID,
		CurrentWeek: 1,
		CurrentDay:  1,
		StartedAt:   time.Now().UTC(),
	}

	executionID, err := s.programRepo.CreateExecution(ctx, exec)
	if err != nil {
		return nil, err
	}
	exec.ID = executionID
	return exec, nil
}

// GetExecution retrieves one execution, enforcing ownership.
func (s *programService) GetExecution(ctx context.Context, userID, executionID primitive.ObjectID) (*domain.ProgramExecution, error) {
	exec, err := s.programRepo.GetExecutionByID(ctx, executionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExecutionNotFound
		}
		return nil, err
	}
	if exec.UserID != userID {
		return nil, ErrExecutionAccessDenied
	}
	return exec, nil
}

// GetExecutions lists the user's program executions.
func (s *programService) GetExecutions(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgramExecution, error) {
	return s.programRepo.GetExecutionsByUserID(ctx, userID)
}

// AdvanceExecution moves the execution pointer one training day forward
// without a session, for skipped or off-app days. Completed executions are
// terminal and come back as an error here, unlike session-driven advancement
// which treats them as a no-op.
func (s *programService) AdvanceExecution(ctx context.Context, userID, executionID primitive.ObjectID) (*domain.ProgramExecution, error) {
	exec, err := s.GetExecution(ctx, userID, executionID)
	if err != nil {
		return nil, err
	}
	if exec.IsCompleted {
		return nil, ErrExecutionCompleted
	}

	tmpl, err := s.programRepo.GetTemplateByID(ctx, exec.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	exec.Advance(tmpl.DaysPerWeek, tmpl.Weeks, time.Now().UTC())
	if err := s.programRepo.UpdateExecution(ctx, exec); err != nil {
		return nil, err
	}
	return exec, nil
}
