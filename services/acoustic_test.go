package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcousticScoreNoFeatures(t *testing.T) {
	s := NewAcousticScorer()

	assert.Equal(t, 0.5, s.Score(nil))
	assert.Equal(t, 0.5, s.Score(map[string]float64{}))
}

func TestAcousticScoreUnknownFeaturesOnly(t *testing.T) {
	s := NewAcousticScorer()

	assert.Equal(t, 0.5, s.Score(map[string]float64{"unknown_feature": 1.0}))
}

func TestAcousticScoreLowHNRRaisesScore(t *testing.T) {
	s := NewAcousticScorer()

	lowHNR := s.Score(map[string]float64{featHNR: 5.0})
	highHNR := s.Score(map[string]float64{featHNR: 18.0})

	assert.Greater(t, lowHNR, highHNR)
}

func TestAcousticScoreMonotonePitchRaisesScore(t *testing.T) {
	s := NewAcousticScorer()

	monotone := s.Score(map[string]float64{featF0Std: 1.0})
	varied := s.Score(map[string]float64{featF0Std: 9.0})

	assert.Greater(t, monotone, varied)
}

func TestAcousticScoreInRange(t *testing.T) {
	s := NewAcousticScorer()
	features := map[string]float64{
		featF0Std:        0.5,
		featLoudnessMean: -55.0,
		featJitter:       0.05,
		featShimmer:      3.0,
		featHNR:          2.0,
		featLoudnessStd:  1.0,
	}

	score := s.Score(features)

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestLookupFeatureExactMatch(t *testing.T) {
	v, ok := lookupFeature(map[string]float64{featHNR: 7.5}, featHNR)

	assert.True(t, ok)
	assert.Equal(t, 7.5, v)
}

func TestLookupFeatureFuzzyMatch(t *testing.T) {
	// 上游工具可能带额外后缀
	v, ok := lookupFeature(map[string]float64{featHNR + "_v2": 7.5}, featHNR)
	assert.True(t, ok)
	assert.Equal(t, 7.5, v)

	// 或者只给出短名
	v, ok = lookupFeature(map[string]float64{"HNRdBACF_sma3nz": 3.0}, featHNR)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestLookupFeatureMissing(t *testing.T) {
	_, ok := lookupFeature(map[string]float64{"loudness_sma3_amean": 1.0}, featJitter)

	assert.False(t, ok)
}

func TestAcousticLevelBands(t *testing.T) {
	assert.Equal(t, "低风险", AcousticLevel(0.1))
	assert.Equal(t, "轻度风险", AcousticLevel(0.2))
	assert.Equal(t, "中度风险", AcousticLevel(0.4))
	assert.Equal(t, "较高风险", AcousticLevel(0.6))
	assert.Equal(t, "高风险", AcousticLevel(0.8))
}

func TestEmotionalIndicators(t *testing.T) {
	s := NewAcousticScorer()
	features := map[string]float64{
		featF0Std:       4.0,
		featLoudnessStd: 10.0,
		featJitter:      0.02,
		featShimmer:     1.0,
		featHNR:         10.0,
		featEnergyMean:  500.0,
	}

	indicators := EmotionalIndicators(s, features)

	assert.Contains(t, indicators, "活跃度")
	assert.Contains(t, indicators, "紧张度")
	assert.Contains(t, indicators, "情绪稳定性")
	assert.Contains(t, indicators, "抑郁倾向")
	assert.Contains(t, indicators, "能量水平")
	for name, v := range indicators {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
}
