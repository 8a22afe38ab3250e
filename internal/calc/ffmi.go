package calc

import (
	"math"

	"alcyxob/reptrack/internal/domain"
)

// FFMICategory buckets a normalized FFMI value. The categories are ordered;
// Suspicious flags a value conventionally considered unattainable without
// pharmaceutical assistance. That is a domain judgment, not a data error.
type FFMICategory string

const (
	FFMIBelowAverage FFMICategory = "below_average"
	FFMIAverage      FFMICategory = "average"
	FFMIAboveAverage FFMICategory = "above_average"
	FFMIExcellent    FFMICategory = "excellent"
	FFMISuperior     FFMICategory = "superior"
	FFMISuspicious   FFMICategory = "suspicious"
)

// BodyFatCategory buckets a body-fat percentage with gender-specific
// thresholds.
type BodyFatCategory string

const (
	BodyFatEssential BodyFatCategory = "essential"
	BodyFatAthlete   BodyFatCategory = "athlete"
	BodyFatFitness   BodyFatCategory = "fitness"
	BodyFatAverage   BodyFatCategory = "average"
	BodyFatObese     BodyFatCategory = "obese"
)

// FitnessStage buckets the composite score.
type FitnessStage string

const (
	StageBeginner     FitnessStage = "beginner"
	StageIntermediate FitnessStage = "intermediate"
	StageGood         FitnessStage = "good"
	StageAdvanced     FitnessStage = "advanced"
	StageElite        FitnessStage = "elite"
)

// FitnessLevel is the composite muscularity/leanness score on a 0-100 scale.
type FitnessLevel struct {
	Score int          `json:"score"`
	Stage FitnessStage `json:"stage"`
}

// NormalizedFFMI computes the fat-free mass index normalized to a 1.8m
// reference height. Returns nil when the body-fat percentage is unknown,
// since lean mass cannot be derived without it.
func NormalizedFFMI(weightKg, heightCm float64, bodyFatPercent *float64) *float64 {
	if bodyFatPercent == nil {
		return nil
	}
	if heightCm < minHeightCm || heightCm > maxHeightCm ||
		weightKg < minWeightKg || weightKg > maxWeightKg {
		return nil
	}
	heightM := heightCm / 100
	leanMassKg := weightKg * (1 - *bodyFatPercent/100)
	ffmi := leanMassKg/(heightM*heightM) + 6.1*(1.8-heightM)
	return &ffmi
}

// FFMIForCategory buckets use half-open intervals: a boundary value belongs
// to the bucket it opens, except 25.0 which still counts as superior.
func FFMIForCategory(ffmi float64) FFMICategory {
	switch {
	case ffmi < 16:
		return FFMIBelowAverage
	case ffmi < 18:
		return FFMIAverage
	case ffmi < 21:
		return FFMIAboveAverage
	case ffmi < 24:
		return FFMIExcellent
	case ffmi <= 25:
		return FFMISuperior
	default:
		return FFMISuspicious
	}
}

// FFMIPoints collapses the FFMI buckets to a 0-4 score. Suspicious values
// score the same as superior.
func FFMIPoints(ffmi float64) int {
	switch FFMIForCategory(ffmi) {
	case FFMIBelowAverage:
		return 0
	case FFMIAverage:
		return 1
	case FFMIAboveAverage:
		return 2
	case FFMIExcellent:
		return 3
	default:
		return 4
	}
}

// BodyFatForCategory buckets a body-fat percentage. Thresholds differ by
// gender; the female scale sits roughly eight points higher throughout.
func BodyFatForCategory(bodyFatPercent float64, gender domain.Gender) BodyFatCategory {
	if gender == domain.GenderFemale {
		switch {
		case bodyFatPercent < 14:
			return BodyFatEssential
		case bodyFatPercent < 21:
			return BodyFatAthlete
		case bodyFatPercent < 25:
			return BodyFatFitness
		case bodyFatPercent < 32:
			return BodyFatAverage
		default:
			return BodyFatObese
		}
	}
	switch {
	case bodyFatPercent < 6:
		return BodyFatEssential
	case bodyFatPercent < 14:
		return BodyFatAthlete
	case bodyFatPercent < 18:
		return BodyFatFitness
	case bodyFatPercent < 25:
		return BodyFatAverage
	default:
		return BodyFatObese
	}
}

// BodyFatPoints collapses the body-fat buckets to a 0-4 score, leaner
// scoring higher.
func BodyFatPoints(bodyFatPercent float64, gender domain.Gender) int {
	switch BodyFatForCategory(bodyFatPercent, gender) {
	case BodyFatEssential:
		return 4
	case BodyFatAthlete:
		return 3
	case BodyFatFitness:
		return 2
	case BodyFatAverage:
		return 1
	default:
		return 0
	}
}

// FFMI and body-fat weights in the composite score. When one input is
// missing the other's weight rescales to cover the full score.
const (
	ffmiWeight    = 0.6
	bodyFatWeight = 0.4
)

// CompositeFitnessScore blends the FFMI and body-fat point scores into a
// 0-100 score with a stage bucket. Either input may be nil; when both are,
// the score is unavailable and nil is returned.
func CompositeFitnessScore(ffmi, bodyFatPercent *float64, gender domain.Gender) *FitnessLevel {
	if ffmi == nil && bodyFatPercent == nil {
		return nil
	}

	weighted := 0.0
	totalWeight := 0.0
	if ffmi != nil {
		weighted += ffmiWeight * float64(FFMIPoints(*ffmi)) / 4
		totalWeight += ffmiWeight
	}
	if bodyFatPercent != nil {
		weighted += bodyFatWeight * float64(BodyFatPoints(*bodyFatPercent, gender)) / 4
		totalWeight += bodyFatWeight
	}

	score := int(math.Round(weighted * 100 / totalWeight))

	var stage FitnessStage
	switch {
	case score < 20:
		stage = StageBeginner
	case score < 40:
		stage = StageIntermediate
	case score < 60:
		stage = StageGood
	case score < 80:
		stage = StageAdvanced
	default:
		stage = StageElite
	}
	return &FitnessLevel{Score: score, Stage: stage}
}
