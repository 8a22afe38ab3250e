package calc

import (
	"fmt"
	"math"
	"strings"
)

// OneRMEstimator predicts the heaviest single-rep lift from a submaximal
// set. Every formula is a closed-form transform of weight and reps; they are
// freely substitutable for one another.
type OneRMEstimator interface {
	Estimate(weightKg float64, reps int) float64
	Name() string
}

type brzycki struct{}
type epley struct{}
type lander struct{}
type lombardi struct{}
type oconner struct{}

var (
	Brzycki  OneRMEstimator = brzycki{}
	Epley    OneRMEstimator = epley{}
	Lander   OneRMEstimator = lander{}
	Lombardi OneRMEstimator = lombardi{}
	OConner  OneRMEstimator = oconner{}
)

// estimators indexed by the name clients send.
var estimators = map[string]OneRMEstimator{
	"brzycki":  Brzycki,
	"epley":    Epley,
	"lander":   Lander,
	"lombardi": Lombardi,
	"oconner":  OConner,
}

// EstimatorForName looks up a formula by name (case insensitive).
func EstimatorForName(name string) (OneRMEstimator, error) {
	if est, ok := estimators[strings.ToLower(name)]; ok {
		return est, nil
	}
	return nil, fmt.Errorf("unknown one-rep-max formula %q", name)
}

// EstimatorNames returns the supported formula names.
func EstimatorNames() []string {
	return []string{"brzycki", "epley", "lander", "lombardi", "oconner"}
}

// round2 keeps estimates at a display-friendly two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// valid short-circuits the degenerate inputs shared by all formulas:
// non-positive weight or reps estimate to 0, a single rep is already the max.
func valid(weightKg float64, reps int) (float64, bool) {
	if weightKg <= 0 || reps <= 0 {
		return 0, false
	}
	if reps == 1 {
		return weightKg, false
	}
	return 0, true
}

func (brzycki) Name() string { return "brzycki" }

// Estimate applies Brzycki: 1RM = w * 36 / (37 - r). Most accurate below
// 10 reps; capped at 36 reps to keep the denominator positive.
func (brzycki) Estimate(weightKg float64, reps int) float64 {
	if v, ok := valid(weightKg, reps); !ok {
		return v
	}
	if reps >= 37 {
		reps = 36
	}
	return round2(weightKg * 36 / float64(37-reps))
}

func (epley) Name() string { return "epley" }

// Estimate applies Epley: 1RM = w * (1 + 0.0333r).
func (epley) Estimate(weightKg float64, reps int) float64 {
	if v, ok := valid(weightKg, reps); !ok {
		return v
	}
	return round2(weightKg * (1 + 0.0333*float64(reps)))
}

func (lander) Name() string { return "lander" }

// Estimate applies Lander: 1RM = 100w / (101.3 - 2.67123r). Capped at 37
// reps to keep the denominator positive.
func (lander) Estimate(weightKg float64, reps int) float64 {
	if v, ok := valid(weightKg, reps); !ok {
		return v
	}
	if reps > 37 {
		reps = 37
	}
	return round2(100 * weightKg / (101.3 - 2.67123*float64(reps)))
}

func (lombardi) Name() string { return "lombardi" }

// Estimate applies Lombardi: 1RM = w * r^0.10.
func (lombardi) Estimate(weightKg float64, reps int) float64 {
	if v, ok := valid(weightKg, reps); !ok {
		return v
	}
	return round2(weightKg * math.Pow(float64(reps), 0.10))
}

func (oconner) Name() string { return "oconner" }

// Estimate applies O'Conner: 1RM = w * (1 + 0.025r).
func (oconner) Estimate(weightKg float64, reps int) float64 {
	if v, ok := valid(weightKg, reps); !ok {
		return v
	}
	return round2(weightKg * (1 + 0.025*float64(reps)))
}

// PercentageEntry is one row of the training percentage table.
type PercentageEntry struct {
	Percent  int     `json:"percent"`
	WeightKg float64 `json:"weightKg"`
}

// PercentageTable derives working weights at the standard training
// percentages, 50% through 100% in 5% steps, from an estimated one-rep max.
// Weights round to the nearest 0.5kg for practical plate loading.
func PercentageTable(oneRMKg float64) []PercentageEntry {
	if oneRMKg <= 0 {
		return nil
	}
	table := make([]PercentageEntry, 0, 11)
	for percent := 50; percent <= 100; percent += 5 {
		raw := oneRMKg * float64(percent) / 100
		table = append(table, PercentageEntry{
			Percent:  percent,
			WeightKg: math.Round(raw*2) / 2,
		})
	}
	return table
}
