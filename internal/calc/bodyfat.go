package calc

import (
	"math"

	"alcyxob/reptrack/internal/domain"
)

// Circumference bounds in centimeters. Measurements outside these ranges are
// treated as absent rather than clamped: a wildly wrong tape measurement
// should yield "unavailable", not a distorted estimate.
const (
	minNeckCm  = 20.0
	maxNeckCm  = 60.0
	minWaistCm = 50.0
	maxWaistCm = 200.0
	minHipCm   = 60.0
	maxHipCm   = 200.0
)

// Body-fat result clamp bounds. The female floor is higher, reflecting the
// higher essential-fat level.
const (
	minBodyFatMale   = 2.0
	minBodyFatFemale = 8.0
	maxBodyFat       = 50.0
)

// BodyFatNavy estimates body-fat percentage from circumference measurements
// using the U.S. Navy method. It returns nil when the required measurements
// are absent, out of plausible range, or would make the formula degenerate
// (waist not exceeding neck, non-positive log-linear density). Callers must
// treat nil as "unavailable", distinct from any numeric result.
func BodyFatNavy(gender domain.Gender, heightCm float64, neckCm, waistCm, hipCm *float64) *float64 {
	if neckCm == nil || waistCm == nil {
		return nil
	}
	if heightCm <= minHeightCm || heightCm >= maxHeightCm {
		return nil
	}
	neck, waist := *neckCm, *waistCm
	if neck <= minNeckCm || neck >= maxNeckCm || waist <= minWaistCm || waist >= maxWaistCm {
		return nil
	}

	var d, floor float64
	if gender == domain.GenderFemale {
		if hipCm == nil {
			return nil
		}
		hip := *hipCm
		if hip <= minHipCm || hip >= maxHipCm {
			return nil
		}
		if waist+hip <= neck {
			return nil
		}
		d = 1.29579 - 0.35004*math.Log10(waist+hip-neck) + 0.22100*math.Log10(heightCm)
		floor = minBodyFatFemale
	} else {
		if waist <= neck {
			return nil
		}
		d = 1.0324 - 0.19077*math.Log10(waist-neck) + 0.15456*math.Log10(heightCm)
		floor = minBodyFatMale
	}
	if d <= 0 {
		return nil
	}

	result := clamp(495/d-450, floor, maxBodyFat)
	return &result
}
