package api

import (
	"errors"
	"fmt"
	"net/http"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type StartSessionRequest struct {
	Kind        string   `json:"kind" binding:"required,oneof=lift cardio"`
	ExecutionID *string  `json:"executionId" binding:"omitempty"`
	ExerciseIDs []string `json:"exerciseIds" binding:"omitempty"` // Lift sessions only
}

type LogSetRequest struct {
	EntryIndex int     `json:"entryIndex" binding:"min=0"`
	WeightKg   float64 `json:"weightKg" binding:"required,gt=0"`
	Reps       int     `json:"reps" binding:"required,min=1"`
	Completed  bool    `json:"completed"`
}

type LogCardioResultRequest struct {
	ExerciseID  string  `json:"exerciseId" binding:"required"`
	DistanceM   float64 `json:"distanceM" binding:"omitempty,gte=0"`
	DurationSec int     `json:"durationSec" binding:"required,gt=0"`
	Calories    int     `json:"calories" binding:"omitempty,gte=0"`
	Completed   bool    `json:"completed"`
}

type OverrideRequest struct {
	DurationSec *int     `json:"durationSec" binding:"omitempty,gte=0"`
	DistanceM   *float64 `json:"distanceM" binding:"omitempty,gte=0"`
	Calories    *int     `json:"calories" binding:"omitempty,gte=0"`
}

// --- Handler Methods ---

// StartSession begins a new workout session.
func (h *WorkoutHandler) StartSession(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var executionID *primitive.ObjectID
	if req.ExecutionID != nil {
		id, err := primitive.ObjectIDFromHex(*req.ExecutionID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid executionId format")
			return
		}
		executionID = &id
	}

	exerciseIDs := make([]primitive.ObjectID, 0, len(req.ExerciseIDs))
	for _, raw := range req.ExerciseIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
			return
		}
		exerciseIDs = append(exerciseIDs, id)
	}

	session, err := h.workoutService.StartSession(c.Request.Context(), userID, domain.ExerciseKind(req.Kind), executionID, exerciseIDs)
	if err != nil {
		respondWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSessions lists the user's workout sessions.
func (h *WorkoutHandler) GetSessions(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	sessions, err := h.workoutService.GetSessions(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession retrieves a single session.
func (h *WorkoutHandler) GetSession(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.workoutService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// LogSet appends a set to one of the session's lift entries.
func (h *WorkoutHandler) LogSet(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.workoutService.LogSet(c.Request.Context(), userID, sessionID, req.EntryIndex, domain.SetResult{
		WeightKg:  req.WeightKg,
		Reps:      req.Reps,
		Completed: req.Completed,
	})
	if err != nil {
		respondWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// LogCardioResult appends a cardio effort to the session.
func (h *WorkoutHandler) LogCardioResult(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req LogCardioResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format")
		return
	}

	session, err := h.workoutService.LogCardioResult(c.Request.Context(), userID, sessionID, domain.CardioResult{
		ExerciseID:  exerciseID,
		DistanceM:   req.DistanceM,
		DurationSec: req.DurationSec,
		Calories:    req.Calories,
		Completed:   req.Completed,
	})
	if err != nil {
		respondWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// OverrideTotals applies manual edits to the session aggregates. Each field
// present in the request is set and locked against recomputation.
func (h *WorkoutHandler) OverrideTotals(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.DurationSec == nil && req.DistanceM == nil && req.Calories == nil {
		abortWithError(c, http.StatusBadRequest, "No override fields provided")
		return
	}

	var session *domain.WorkoutSession
	var err error
	ctx := c.Request.Context()
	if req.DurationSec != nil {
		if session, err = h.workoutService.OverrideDuration(ctx, userID, sessionID, *req.DurationSec); err != nil {
			respondWorkoutError(c, err)
			return
		}
	}
	if req.DistanceM != nil {
		if session, err = h.workoutService.OverrideDistance(ctx, userID, sessionID, *req.DistanceM); err != nil {
			respondWorkoutError(c, err)
			return
		}
	}
	if req.Calories != nil {
		if session, err = h.workoutService.OverrideCalories(ctx, userID, sessionID, *req.Calories); err != nil {
			respondWorkoutError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, session)
}

// CompleteSession finalizes the session.
func (h *WorkoutHandler) CompleteSession(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.workoutService.CompleteSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func respondWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrExecutionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionAccessDenied),
		errors.Is(err, service.ErrExerciseAccessDenied),
		errors.Is(err, service.ErrExecutionAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSessionAlreadyCompleted),
		errors.Is(err, service.ErrExecutionCompleted):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidEntryIndex),
		errors.Is(err, service.ErrSessionKindMismatch):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Workout operation failed")
	}
}
