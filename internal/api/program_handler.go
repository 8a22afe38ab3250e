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

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

type ProgramDayRequest struct {
	DayNumber   int      `json:"dayNumber" binding:"required,min=1"`
	Name        string   `json:"name" binding:"omitempty"`
	ExerciseIDs []string `json:"exerciseIds" binding:"omitempty"`
}

type CreateTemplateRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description" binding:"omitempty"`
	Weeks       int                 `json:"weeks" binding:"required,min=1"`
	DaysPerWeek int                 `json:"daysPerWeek" binding:"required,min=1"`
	Days        []ProgramDayRequest `json:"days" binding:"omitempty"`
}

type StartExecutionRequest struct {
	ProgramID string `json:"programId" binding:"required"`
}

// --- Handler Methods ---

// CreateTemplate stores a new program template.
func (h *ProgramHandler) CreateTemplate(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tmpl := domain.ProgramTemplate{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Weeks:       req.Weeks,
		DaysPerWeek: req.DaysPerWeek,
	}
	for _, day := range req.Days {
		exerciseIDs := make([]primitive.ObjectID, 0, len(day.ExerciseIDs))
		for _, raw := range day.ExerciseIDs {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
				return
			}
			exerciseIDs = append(exerciseIDs, id)
		}
		tmpl.Days = append(tmpl.Days, domain.ProgramDay{
			DayNumber:   day.DayNumber,
			Name:        day.Name,
			ExerciseIDs: exerciseIDs,
		})
	}

	created, err := h.programService.CreateTemplate(c.Request.Context(), &tmpl)
	if err != nil {
		respondProgramError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTemplates lists the user's program templates.
func (h *ProgramHandler) GetTemplates(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	templates, err := h.programService.GetTemplates(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve program templates")
		return
	}
	if templates == nil {
		templates = []domain.ProgramTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate retrieves a single program template.
func (h *ProgramHandler) GetTemplate(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	templateID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	tmpl, err := h.programService.GetTemplate(c.Request.Context(), userID, templateID)
	if err != nil {
		respondProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// StartExecution begins a new run through a template.
func (h *ProgramHandler) StartExecution(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req StartExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	programID, err := primitive.ObjectIDFromHex(req.ProgramID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid programId format")
		return
	}

	exec, err := h.programService.StartExecution(c.Request.Context(), userID, programID)
	if err != nil {
		respondProgramError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exec)
}

// GetExecutions lists the user's program executions.
func (h *ProgramHandler) GetExecutions(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	executions, err := h.programService.GetExecutions(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve executions")
		return
	}
	if executions == nil {
		executions = []domain.ProgramExecution{}
	}
	c.JSON(http.StatusOK, executions)
}

// GetExecution retrieves a single program execution.
func (h *ProgramHandler) GetExecution(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	executionID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	exec, err := h.programService.GetExecution(c.Request.Context(), userID, executionID)
	if err != nil {
		respondProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, exec)
}

// AdvanceExecution moves the execution pointer one day forward without a
// completed session, for skipped days.
func (h *ProgramHandler) AdvanceExecution(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}
	executionID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	exec, err := h.programService.AdvanceExecution(c.Request.Context(), userID, executionID)
	if err != nil {
		respondProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, exec)
}

func respondProgramError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, service.ErrExecutionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgramAccessDenied),
		errors.Is(err, service.ErrExecutionAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrExecutionCompleted):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrProgramInvalid):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Program operation failed")
	}
}
