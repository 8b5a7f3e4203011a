package services

import (
	"testing"
	"time"

	"MindPulseGo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSpikeTriggersOnOutlier(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -10)
	for i, score := range []int{4, 5, 6, 5, 5} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}
	latest := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 20), time.Now())

	alert, err := s.DetectSpike("user-1", &latest)

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, models.AlertEmotionSpike, alert.AlertType)
	assert.Equal(t, models.SeverityMedium, alert.Severity)
	assert.Equal(t, 20.0, alert.Value)
	assert.Contains(t, alert.Message, "检测到情绪高峰")
	require.NotNil(t, alert.AssessmentRecordID)
	assert.Equal(t, latest.ID, *alert.AssessmentRecordID)
}

func TestDetectSpikeCriticalOnLongFlatHistory(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -20)
	for i := 0; i < 10; i++ {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 5), base.AddDate(0, 0, i))
	}
	latest := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 25), time.Now())

	alert, err := s.DetectSpike("user-1", &latest)

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, models.SeverityCritical, alert.Severity)
	assert.Contains(t, alert.Recommendation, "400-161-9995")
}

func TestDetectSpikeRequiresTwoRecords(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	latest := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 25), time.Now())

	alert, err := s.DetectSpike("user-1", &latest)

	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestDetectSpikeSkipsUniformScores(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	// 所有分数相同，标准差为0，最新分数不会超过阈值
	base := time.Now().AddDate(0, 0, -10)
	for i := 0; i < 5; i++ {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 5), base.AddDate(0, 0, i))
	}
	latest := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 5), time.Now())

	alert, err := s.DetectSpike("user-1", &latest)

	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestDetectSpikeIgnoresNormalScore(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -10)
	for i, score := range []int{4, 5, 6, 5, 5} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}
	latest := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 6), time.Now())

	alert, err := s.DetectSpike("user-1", &latest)

	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestSpikeSeverityByZScore(t *testing.T) {
	assert.Equal(t, models.SeverityCritical, spikeSeverity(3.5))
	assert.Equal(t, models.SeverityHigh, spikeSeverity(2.8))
	assert.Equal(t, models.SeverityMedium, spikeSeverity(2.2))
	assert.Equal(t, models.SeverityLow, spikeSeverity(1.5))
}

func TestDetectWorseningTrendTriggersOnSteepRise(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -3)
	for i, score := range []int{5, 10, 16} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	alert, err := s.DetectWorseningTrend("user-1")

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, models.AlertWorseningTrend, alert.AlertType)
	assert.Equal(t, models.SeverityHigh, alert.Severity)
	assert.Equal(t, 11.0, alert.Value)
}

func TestDetectWorseningTrendAlwaysHighSeverity(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	// 升幅刚过阈值也按高严重度告警
	base := time.Now().AddDate(0, 0, -3)
	for i, score := range []int{5, 8, 11} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	alert, err := s.DetectWorseningTrend("user-1")

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, models.SeverityHigh, alert.Severity)
	assert.Equal(t, 6.0, alert.Value)
}

func TestDetectWorseningTrendIgnoresSmallIncrease(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -3)
	for i, score := range []int{5, 6, 8} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	alert, err := s.DetectWorseningTrend("user-1")

	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestDetectWorseningTrendRequiresStrictIncrease(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -3)
	for i, score := range []int{5, 15, 12} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	alert, err := s.DetectWorseningTrend("user-1")

	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestAnalyzeWavePatternInsufficientData(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	pattern, err := s.AnalyzeWavePattern("user-1")

	require.NoError(t, err)
	assert.Equal(t, "insufficient_data", pattern.Pattern)
}

func TestAnalyzeWavePatternSixRecordsInsufficient(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -6)
	for i, score := range []int{3, 6, 9, 12, 15, 18} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	pattern, err := s.AnalyzeWavePattern("user-1")

	require.NoError(t, err)
	assert.Equal(t, "insufficient_data", pattern.Pattern)
}

func TestAnalyzeWavePatternStable(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -7)
	for i, score := range []int{8, 9, 8, 8, 9, 8, 8} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	pattern, err := s.AnalyzeWavePattern("user-1")

	require.NoError(t, err)
	assert.Equal(t, "stable", pattern.Pattern)
}

func TestAnalyzeWavePatternHighFluctuation(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -7)
	for i, score := range []int{2, 20, 3, 22, 2, 21, 3} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	pattern, err := s.AnalyzeWavePattern("user-1")

	require.NoError(t, err)
	assert.Equal(t, "high_fluctuation", pattern.Pattern)
	assert.Greater(t, pattern.Variance, 20.0)
}

func TestAnalyzeWavePatternSteadilyWorsening(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -7)
	for i, score := range []int{3, 6, 9, 12, 15, 18, 21} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	pattern, err := s.AnalyzeWavePattern("user-1")

	require.NoError(t, err)
	assert.Equal(t, "steadily_worsening", pattern.Pattern)
}

func TestAnalyzeEmotionWaveNoData(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	overview, err := s.AnalyzeEmotionWave("user-1")

	require.NoError(t, err)
	assert.Equal(t, "NO_DATA", overview.Status)
	assert.Empty(t, overview.DataPoints)
}

func TestAnalyzeEmotionWaveOverview(t *testing.T) {
	db := newTestDB(t)
	s := NewEmotionWaveService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -7)
	for i, score := range []int{3, 6, 9, 12, 15, 18, 21} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	overview, err := s.AnalyzeEmotionWave("user-1")

	require.NoError(t, err)
	assert.Equal(t, "OK", overview.Status)
	require.Len(t, overview.DataPoints, 7)
	assert.Equal(t, 3, overview.DataPoints[0].Score)
	assert.Equal(t, 21, overview.DataPoints[6].Score)
	assert.InDelta(t, 12.0, overview.Mean, 0.001)
	assert.InDelta(t, 6.0, overview.StdDev, 0.001)
	assert.Equal(t, 3.0, overview.Min)
	assert.Equal(t, 21.0, overview.Max)

	require.NotNil(t, overview.Pattern)
	assert.Equal(t, "steadily_worsening", overview.Pattern.Pattern)

	require.NotNil(t, overview.CurrentRisk)
	assert.Equal(t, "SEVERE", overview.CurrentRisk.Level)
	assert.Equal(t, 21, overview.CurrentRisk.Score)
	assert.Contains(t, overview.CurrentRisk.Description, "严重")
}

func TestAssessCurrentRiskBands(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{2, "MINIMAL"},
		{5, "MILD"},
		{10, "MODERATE"},
		{15, "MODERATE_SEVERE"},
		{20, "SEVERE"},
	}
	for _, tc := range cases {
		risk := assessCurrentRisk(&models.AssessmentRecord{TotalScore: tc.score, CreatedAt: time.Now()})
		assert.Equal(t, tc.level, risk.Level, "score=%d", tc.score)
		assert.Equal(t, tc.score, risk.Score)
	}
}
