// Package calc holds the pure-function calculation core: energy expenditure,
// macro targets, body composition estimates and one-rep-max predictions.
// Every function is stateless and side-effect free, so all of them are safe
// to call concurrently. None of them return errors: implausible biometric
// input degrades to a clamped or fixed fallback value instead, because the
// app must always be able to show a number.
package calc

import (
	"math"

	"alcyxob/reptrack/internal/domain"
)

// Plausible physiological input bounds. Inputs outside these ranges trigger
// the conservative fallbacks rather than an error.
const (
	minAge      = 10
	maxAge      = 120
	minHeightCm = 100.0
	maxHeightCm = 250.0
	minWeightKg = 30.0
	maxWeightKg = 300.0
)

// Fallback and clamp bounds for the energy chain.
const (
	fallbackBMRMale   = 1800.0
	fallbackBMRFemale = 1500.0
	minBMR            = 800.0
	maxBMR            = 4000.0

	fallbackTDEE = 2000.0
	minTDEE      = 1000.0
	maxTDEE      = 6000.0

	fallbackCalories = 2000.0
	minCalories      = 1000.0
	maxCalories      = 5000.0
)

// Fallback macro split returned when weight or calories are implausible.
const (
	fallbackProteinG = 100.0
	fallbackCarbsG   = 200.0
	fallbackFatG     = 70.0
)

// MacroSplit is a daily macro nutrient target in grams.
type MacroSplit struct {
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BMR computes the basal metabolic rate in kcal/day. When a body-fat
// percentage within (3,50) is supplied the Katch-McArdle formula is used,
// otherwise Mifflin-St Jeor. Implausible age, height or weight short-circuit
// to a fixed per-gender fallback. The result always lies in [800,4000].
func BMR(gender domain.Gender, ageYears int, heightCm, weightKg float64, bodyFatPercent *float64) float64 {
	if ageYears < minAge || ageYears > maxAge ||
		heightCm < minHeightCm || heightCm > maxHeightCm ||
		weightKg < minWeightKg || weightKg > maxWeightKg {
		if gender == domain.GenderFemale {
			return fallbackBMRFemale
		}
		return fallbackBMRMale
	}

	var bmr float64
	if bodyFatPercent != nil && *bodyFatPercent >= 3 && *bodyFatPercent <= 50 {
		// Katch-McArdle: based on lean body mass, more accurate when body
		// composition is known.
		leanMassKg := weightKg * (1 - *bodyFatPercent/100)
		bmr = 370 + 21.6*leanMassKg
	} else {
		// Mifflin-St Jeor.
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
		if gender == domain.GenderFemale {
			bmr -= 161
		} else {
			bmr += 5
		}
	}
	return clamp(bmr, minBMR, maxBMR)
}

// TDEE computes total daily energy expenditure from a BMR and an activity
// multiplier. A BMR outside [800,4000] falls back to 2000 before scaling.
// The result always lies in [1000,6000].
func TDEE(bmr, activityMultiplier float64) float64 {
	if bmr < minBMR || bmr > maxBMR {
		bmr = fallbackTDEE
	}
	return clamp(bmr*activityMultiplier, minTDEE, maxTDEE)
}

// DailyCalorieTarget applies a goal adjustment factor to TDEE. A TDEE
// outside [1000,6000] falls back to 2000 before scaling. The result always
// lies in [1000,5000].
func DailyCalorieTarget(tdee, goalAdjustment float64) float64 {
	if tdee < minTDEE || tdee > maxTDEE {
		tdee = fallbackCalories
	}
	return clamp(tdee*goalAdjustment, minCalories, maxCalories)
}

// Macros splits a daily calorie target into protein, fat and carbohydrate
// grams. Protein is weight-based, fat takes a quarter of the calories, and
// carbohydrates absorb the remainder with a 50g floor. Implausible inputs
// return a fixed fallback split.
func Macros(weightKg, dailyCalories, proteinPerKg float64) MacroSplit {
	if weightKg < minWeightKg || weightKg > maxWeightKg ||
		dailyCalories < minCalories || dailyCalories > maxCalories {
		return MacroSplit{ProteinG: fallbackProteinG, CarbsG: fallbackCarbsG, FatG: fallbackFatG}
	}

	protein := clamp(weightKg*proteinPerKg, 50, 300)
	fat := clamp(0.25*dailyCalories/9, 30, 150)
	carbs := math.Max(50, (dailyCalories-protein*4-fat*9)/4)

	return MacroSplit{ProteinG: protein, CarbsG: carbs, FatG: fat}
}
