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

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	Name           string   `json:"name" binding:"omitempty"`
	Gender         string   `json:"gender" binding:"required,oneof=male female"`
	AgeYears       int      `json:"ageYears" binding:"required,min=1"`
	HeightCm       float64  `json:"heightCm" binding:"required,gt=0"`
	WeightKg       float64  `json:"weightKg" binding:"required,gt=0"`
	BodyFatPercent *float64 `json:"bodyFatPercent" binding:"omitempty,gt=0"`
	ActivityLevel  string   `json:"activityLevel" binding:"required,oneof=sedentary lightly_active moderately_active very_active extremely_active"`
	Goal           string   `json:"goal" binding:"required,oneof=cut maintain bulk"`
}

type LogMeasurementRequest struct {
	NeckCm   *float64   `json:"neckCm" binding:"omitempty,gt=0"`
	WaistCm  *float64   `json:"waistCm" binding:"omitempty,gt=0"`
	HipCm    *float64   `json:"hipCm" binding:"omitempty,gt=0"`
	WeightKg float64    `json:"weightKg" binding:"omitempty,gt=0"`
	TakenAt  *time.Time `json:"takenAt" binding:"omitempty"`
}

// --- Handler Methods ---

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateProfile replaces the biometric profile fields.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Name:           req.Name,
		Gender:         domain.Gender(req.Gender),
		AgeYears:       req.AgeYears,
		HeightCm:       req.HeightCm,
		WeightKg:       req.WeightKg,
		BodyFatPercent: req.BodyFatPercent,
		ActivityLevel:  domain.ActivityLevel(req.ActivityLevel),
		Goal:           domain.FitnessGoal(req.Goal),
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// NutritionReport returns the BMR/TDEE/calorie/macro chain for the profile.
func (h *ProfileHandler) NutritionReport(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	report, err := h.profileService.NutritionReport(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrProfileIncomplete):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to compute nutrition report")
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// FitnessReport returns body fat, FFMI and the composite fitness level.
func (h *ProfileHandler) FitnessReport(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	report, err := h.profileService.FitnessReport(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrProfileIncomplete):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to compute fitness report")
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// LogMeasurement stores a new body measurement set.
func (h *ProfileHandler) LogMeasurement(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req LogMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	takenAt := time.Now().UTC()
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}

	m := &domain.BodyMeasurement{
		UserID:   userID,
		NeckCm:   req.NeckCm,
		WaistCm:  req.WaistCm,
		HipCm:    req.HipCm,
		WeightKg: req.WeightKg,
		TakenAt:  takenAt,
	}
	created, err := h.profileService.LogMeasurement(c.Request.Context(), m)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to log measurement")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetMeasurements lists the user's measurement history.
func (h *ProfileHandler) GetMeasurements(c *gin.Context) {
	userID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	measurements, err := h.profileService.GetMeasurements(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve measurements")
		return
	}
	if measurements == nil {
		measurements = []domain.BodyMeasurement{}
	}
	c.JSON(http.StatusOK, measurements)
}
