package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest defines the expected JSON for creating or updating an
// exercise definition.
type ExerciseRequest struct {
	Name         string  `json:"name" binding:"required"`
	Kind         string  `json:"kind" binding:"required,oneof=lift cardio"`
	MuscleGroup  string  `json:"muscleGroup" binding:"omitempty"` // e.g., "Chest", "Legs"
	CardioTarget string  `json:"cardioTarget" binding:"omitempty,oneof=distance time open"`
	TargetValue  float64 `json:"targetValue" binding:"omitempty,gt=0"` // Meters or seconds
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	MuscleGroup  string    `json:"muscleGroup,omitempty"`
	CardioTarget string    `json:"cardioTarget,omitempty"`
	TargetValue  float64   `json:"targetValue,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:           ex.ID.Hex(),
		Name:         ex.Name,
		Kind:         string(ex.Kind),
		MuscleGroup:  ex.MuscleGroup,
		CardioTarget: string(ex.CardioTarget),
		TargetValue:  ex.TargetValue,
		CreatedAt:    ex.CreatedAt,
		UpdatedAt:    ex.UpdatedAt,
	}
}

func exerciseFromRequest(req ExerciseRequest) domain.Exercise {
	return domain.Exercise{
		Name:         req.Name,
		Kind:         domain.ExerciseKind(req.Kind),
		MuscleGroup:  req.MuscleGroup,
		CardioTarget: domain.CardioTarget(req.CardioTarget),
		TargetValue:  req.TargetValue,
	}
}

// --- Handler Methods ---

// CreateExercise adds a definition to the authenticated user's library.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise := exerciseFromRequest(req)
	exercise.UserID = userID

	created, err := h.exerciseService.CreateExercise(c.Request.Context(), &exercise)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		}
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(created))
}

// GetExercises lists the user's exercise library.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.GetExercises(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}

	resp := make([]ExerciseResponse, 0, len(exercises))
	for i := range exercises {
		resp = append(resp, MapExerciseToResponse(&exercises[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetExercise retrieves a single exercise from the user's library.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	exerciseID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise replaces the mutable fields of a definition.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	exerciseID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise := exerciseFromRequest(req)
	exercise.ID = exerciseID

	updated, err := h.exerciseService.UpdateExercise(c.Request.Context(), userID, &exercise)
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(updated))
}

// DeleteExercise removes a definition from the library.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	exerciseID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, exerciseID); err != nil {
		respondExerciseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Exercise operation failed")
	}
}
