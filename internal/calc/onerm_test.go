package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneRMDegenerateInputs(t *testing.T) {
	for _, name := range EstimatorNames() {
		est, err := EstimatorForName(name)
		require.NoError(t, err)

		assert.Equal(t, 0.0, est.Estimate(0, 5), name)
		assert.Equal(t, 0.0, est.Estimate(-10, 5), name)
		assert.Equal(t, 0.0, est.Estimate(100, 0), name)
		// A single rep is already the maximum, regardless of formula.
		assert.Equal(t, 100.0, est.Estimate(100, 1), name)
	}
}

func TestOneRMFormulas(t *testing.T) {
	assert.InDelta(t, 100*36.0/32.0, Brzycki.Estimate(100, 5), 0.01)
	assert.InDelta(t, 100*(1+0.0333*5), Epley.Estimate(100, 5), 0.01)
	assert.InDelta(t, 100*100/(101.3-2.67123*5), Lander.Estimate(100, 5), 0.01)
	assert.InDelta(t, 100*math.Pow(5, 0.10), Lombardi.Estimate(100, 5), 0.01)
	assert.InDelta(t, 100*(1+0.025*5), OConner.Estimate(100, 5), 0.01)
}

func TestBrzyckiDenominatorGuard(t *testing.T) {
	// Beyond 36 reps Brzycki's denominator would hit zero or flip sign;
	// the estimate caps at the 36-rep value instead.
	capVal := Brzycki.Estimate(100, 36)
	assert.Equal(t, capVal, Brzycki.Estimate(100, 40))
	assert.Greater(t, capVal, 0.0)
}

func TestEstimatorForName(t *testing.T) {
	est, err := EstimatorForName("Epley")
	require.NoError(t, err)
	assert.Equal(t, "epley", est.Name())

	_, err = EstimatorForName("magic")
	assert.Error(t, err)
}

func TestPercentageTable(t *testing.T) {
	table := PercentageTable(143)
	require.Len(t, table, 11)
	assert.Equal(t, 50, table[0].Percent)
	assert.Equal(t, 100, table[10].Percent)
	assert.Equal(t, 143.0, table[10].WeightKg)

	// 50% of 143 is 71.5 - already on a half-kg boundary.
	assert.Equal(t, 71.5, table[0].WeightKg)

	// Every entry rounds to the nearest 0.5kg.
	for _, entry := range table {
		assert.Equal(t, entry.WeightKg, math.Round(entry.WeightKg*2)/2)
	}

	assert.Nil(t, PercentageTable(0))
}
