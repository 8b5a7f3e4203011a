package services

import (
	"testing"
	"time"

	"MindPulseGo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAssessmentSevere(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	req := &models.SubmitAssessmentRequest{
		Answers: []int{3, 3, 3, 3, 3, 3, 3, 3, 3},
	}
	result, err := s.SubmitAssessment("user-1", req)

	require.NoError(t, err)
	assert.Equal(t, 27, result.TotalScore)
	assert.Equal(t, "严重", result.Level)
	assert.Equal(t, "severe_risk", result.Cluster)
	assert.Contains(t, result.Intervention, "⚠️ 检测到自伤风险")
	assert.Greater(t, result.RiskScore, 0.5)
	assert.True(t, result.AnomalyDetected)

	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, "support", result.Recommendations[len(result.Recommendations)-1].Type)

	var count int64
	require.NoError(t, db.Model(&models.AssessmentRecord{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitAssessmentZeroesNegativeAnswers(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	result, err := s.SubmitAssessment("user-1", &models.SubmitAssessmentRequest{Answers: []int{1, -1, 2}})

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalScore)

	var record models.AssessmentRecord
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&record).Error)
	assert.Equal(t, 3, record.TotalScore)
}

func TestSubmitAssessmentRejectsEmptyAnswers(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	_, err := s.SubmitAssessment("user-1", &models.SubmitAssessmentRequest{})
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.AssessmentRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitAssessmentShortQuestionnaireNoCrisisPrefix(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	// 7项量表的末位答案不是安全条目，不应触发危机提示和安全加分
	result, err := s.SubmitAssessment("user-1", &models.SubmitAssessmentRequest{
		QuestionnaireCode: "GAD-7",
		Answers:           []int{0, 0, 0, 0, 0, 0, 1},
	})

	require.NoError(t, err)
	assert.Equal(t, "low_risk", result.Cluster)
	assert.NotContains(t, result.Intervention, "⚠️")
	assert.Less(t, result.RiskScore, 0.1)
}

func TestSubmitAssessmentWithSentimentAndVoice(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	req := &models.SubmitAssessmentRequest{
		Answers:       []int{1, 1, 0, 1, 0, 0, 0, 0, 0},
		SentimentText: "最近很痛苦，感到绝望",
		VoiceFeatures: map[string]float64{featHNR: 3.0, featF0Std: 0.5},
	}
	result, err := s.SubmitAssessment("user-1", req)

	require.NoError(t, err)
	require.NotNil(t, result.Sentiment)
	assert.Equal(t, "negative", result.Sentiment.Sentiment)
	require.NotNil(t, result.VoiceScore)
	assert.GreaterOrEqual(t, result.VoiceScore.DepressionScore, 0.0)
	assert.LessOrEqual(t, result.VoiceScore.DepressionScore, 1.0)
	assert.NotEmpty(t, result.VoiceScore.DepressionLevel)
	assert.Equal(t, 2, result.VoiceScore.FeatureCount)

	var record models.AssessmentRecord
	require.NoError(t, db.Where("id = ?", result.RecordID).First(&record).Error)
	require.NotNil(t, record.SentimentScore)
	assert.Less(t, *record.SentimentScore, 0.0)
	require.NotNil(t, record.VoiceEmotionScore)
}

func TestSubmitAssessmentDefaultsToPHQ9(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	result, err := s.SubmitAssessment("user-1", &models.SubmitAssessmentRequest{
		Answers: []int{1, 0, 1, 0, 1, 0, 1, 0, 1},
	})
	require.NoError(t, err)

	var record models.AssessmentRecord
	require.NoError(t, db.Where("id = ?", result.RecordID).First(&record).Error)
	assert.Equal(t, "PHQ-9", record.QuestionnaireCode)
}

func TestSubmitAssessmentTrendAfterThreeSubmissions(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -2)
	seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 5), base)
	seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 10), base.AddDate(0, 0, 1))

	result, err := s.SubmitAssessment("user-1", &models.SubmitAssessmentRequest{
		Answers: answersForScore(t, 15),
	})

	require.NoError(t, err)
	require.NotNil(t, result.Trend)
	assert.Equal(t, "worsening", result.Trend.Trend)
	assert.Equal(t, "恶化中", result.Trend.TrendText)
}

func TestSubmitAssessmentWorseningAlert(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -2)
	seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 5), base)
	seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 10), base.AddDate(0, 0, 1))

	_, err := s.SubmitAssessment("user-1", &models.SubmitAssessmentRequest{
		Answers: answersForScore(t, 16),
	})
	require.NoError(t, err)

	var alerts []models.EmotionAlert
	require.NoError(t, db.Where("user_id = ? AND alert_type = ?",
		"user-1", models.AlertWorseningTrend).Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityHigh, alerts[0].Severity)
}

func TestGetHistoryAscendingOrder(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -3)
	newer := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 10), base.AddDate(0, 0, 2))
	older := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 5), base)

	history, err := s.GetHistory("user-1")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, older.ID, history[0].ID)
	assert.Equal(t, newer.ID, history[1].ID)
}

func TestGetTrend(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	base := time.Now().AddDate(0, 0, -3)
	for i, score := range []int{15, 10, 5} {
		seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, score), base.AddDate(0, 0, i))
	}

	trend, err := s.GetTrend("user-1", PHQ9MaxScore)

	require.NoError(t, err)
	assert.Equal(t, "improving", trend.Trend)
}

func TestGetHistoryInRange(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	now := time.Now()
	inside := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 8), now.AddDate(0, 0, -2))
	seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 10), now.AddDate(0, 0, -30))

	records, err := s.GetHistoryInRange("user-1", now.AddDate(0, 0, -7), now)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, inside.ID, records[0].ID)
}

func TestGetHighRiskRecords(t *testing.T) {
	db := newTestDB(t)
	s := NewAssessmentService(db, NewAlertingService(db))

	now := time.Now()
	high := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 22), now.AddDate(0, 0, -1))
	low := seedAssessment(t, db, "user-1", "PHQ-9", answersForScore(t, 3), now)
	require.NoError(t, db.Model(&models.AssessmentRecord{}).Where("id = ?", high.ID).Update("risk_score", 0.8).Error)
	require.NoError(t, db.Model(&models.AssessmentRecord{}).Where("id = ?", low.ID).Update("risk_score", 0.1).Error)

	records, err := s.GetHighRiskRecords("user-1", 0.5)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, high.ID, records[0].ID)
	assert.InDelta(t, 0.8, records[0].RiskScore, 0.001)
}
