package api

import (
	"fmt"
	"net/http"

	"alcyxob/reptrack/internal/calc"
	"alcyxob/reptrack/internal/domain"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler exposes the stateless calculators. No persistence is
// involved; the endpoints compute straight from the request body.
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// --- DTOs ---

type OneRMRequest struct {
	WeightKg float64 `json:"weightKg" binding:"required,gt=0"`
	Reps     int     `json:"reps" binding:"required,min=1"`
	Formula  string  `json:"formula" binding:"omitempty"`
}

type OneRMEstimate struct {
	Formula string  `json:"formula"`
	OneRMKg float64 `json:"oneRmKg"`
}

type OneRMResponse struct {
	Estimates []OneRMEstimate        `json:"estimates"`
	Table     []calc.PercentageEntry `json:"percentageTable"`
}

type BodyFatRequest struct {
	Gender   string   `json:"gender" binding:"required,oneof=male female"`
	HeightCm float64  `json:"heightCm" binding:"required,gt=0"`
	NeckCm   *float64 `json:"neckCm" binding:"omitempty,gt=0"`
	WaistCm  *float64 `json:"waistCm" binding:"omitempty,gt=0"`
	HipCm    *float64 `json:"hipCm" binding:"omitempty,gt=0"`
}

type BodyFatResponse struct {
	BodyFatPercent *float64 `json:"bodyFatPercent"`
}

// --- Handler Methods ---

// EstimateOneRM estimates a one-rep max. With a formula name it returns that
// single estimate; without one it returns every formula. The percentage
// table is derived from the first estimate.
func (h *CalculatorHandler) EstimateOneRM(c *gin.Context) {
	var req OneRMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var estimators []calc.OneRMEstimator
	if req.Formula != "" {
		estimator, err := calc.EstimatorForName(req.Formula)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		estimators = []calc.OneRMEstimator{estimator}
	} else {
		for _, name := range calc.EstimatorNames() {
			estimator, _ := calc.EstimatorForName(name)
			estimators = append(estimators, estimator)
		}
	}

	resp := OneRMResponse{}
	for _, estimator := range estimators {
		resp.Estimates = append(resp.Estimates, OneRMEstimate{
			Formula: estimator.Name(),
			OneRMKg: estimator.Estimate(req.WeightKg, req.Reps),
		})
	}
	if len(resp.Estimates) > 0 {
		resp.Table = calc.PercentageTable(resp.Estimates[0].OneRMKg)
	}
	c.JSON(http.StatusOK, resp)
}

// EstimateBodyFat runs the Navy tape-measure estimate. A null result means
// the provided measurements were insufficient or implausible.
func (h *CalculatorHandler) EstimateBodyFat(c *gin.Context) {
	var req BodyFatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	estimate := calc.BodyFatNavy(domain.Gender(req.Gender), req.HeightCm, req.NeckCm, req.WaistCm, req.HipCm)
	c.JSON(http.StatusOK, BodyFatResponse{BodyFatPercent: estimate})
}
