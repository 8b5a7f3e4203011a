package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.Equal(t, 2.0, mean([]float64{1, 2, 3}))
}

func TestVarianceAndStdDev(t *testing.T) {
	assert.Equal(t, 0.0, variance([]float64{5, 5, 5}))
	assert.InDelta(t, 2.0/3.0, variance([]float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 2.0, stdDev([]float64{3, 7, 3, 7}), 1e-9)
}

func TestLinearSlope(t *testing.T) {
	assert.Equal(t, 0.0, linearSlope([]float64{7}))
	assert.InDelta(t, 2.0, linearSlope([]float64{1, 3, 5, 7}), 1e-9)
	assert.InDelta(t, 0.0, linearSlope([]float64{4, 4, 4}), 1e-9)
}

func TestLinearRegressionPerfectFit(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7}

	slope, intercept, rSquared, err := linearRegression(xs, ys)

	require.NoError(t, err)
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 1.0, intercept, 1e-9)
	assert.InDelta(t, 1.0, rSquared, 1e-9)
}

func TestLinearRegressionDegenerateX(t *testing.T) {
	_, _, _, err := linearRegression([]float64{2, 2, 2}, []float64{1, 2, 3})

	assert.Error(t, err)
}

func TestLinearRegressionTooFewPoints(t *testing.T) {
	_, _, _, err := linearRegression([]float64{1}, []float64{1})

	assert.Error(t, err)
}

func TestPearsonCorrelationPerfectPositive(t *testing.T) {
	r, err := pearsonCorrelation([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})

	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestPearsonCorrelationPerfectNegative(t *testing.T) {
	r, err := pearsonCorrelation([]float64{1, 2, 3}, []float64{6, 4, 2})

	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, 1e-9)
}

func TestPearsonCorrelationZeroVariance(t *testing.T) {
	_, err := pearsonCorrelation([]float64{1, 2, 3}, []float64{5, 5, 5})

	assert.Error(t, err)
}

func TestPearsonCorrelationTooFewPoints(t *testing.T) {
	_, err := pearsonCorrelation([]float64{1, 2}, []float64{1, 2})

	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-1, 0, 1))
	assert.Equal(t, 1.0, clamp(2, 0, 1))
	assert.Equal(t, 0.5, clamp(0.5, 0, 1))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.2, round1(1.24))
	assert.Equal(t, 1.23, round2(1.2349))
	assert.Equal(t, 1.235, round3(1.23456))
}
