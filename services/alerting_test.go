package services

import (
	"testing"
	"time"

	"MindPulseGo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAlertAndList(t *testing.T) {
	db := newTestDB(t)
	s := NewAlertingService(db)

	alert, err := s.CreateAlert("user-1", models.AlertEmotionSpike, models.SeverityHigh,
		2.8, "assessment_submission", "检测到情绪异常波动", "建议联系咨询师", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.False(t, alert.IsRead)

	unread, err := s.GetUnreadAlerts("user-1")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.AlertEmotionSpike, unread[0].AlertType)
}

func TestGetAllAlertsOrderedByCreationDesc(t *testing.T) {
	db := newTestDB(t)
	s := NewAlertingService(db)

	first, err := s.CreateAlert("user-1", models.AlertEmotionSpike, models.SeverityLow,
		1.0, "assessment_submission", "第一条", "", nil)
	require.NoError(t, err)
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	second, err := s.CreateAlert("user-1", models.AlertWorseningTrend, models.SeverityMedium,
		6.0, "assessment_submission", "第二条", "", nil)
	require.NoError(t, err)

	alerts, err := s.GetAllAlerts("user-1")

	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, second.ID, alerts[0].ID)
	assert.Equal(t, first.ID, alerts[1].ID)
}

func TestMarkAsRead(t *testing.T) {
	db := newTestDB(t)
	s := NewAlertingService(db)

	alert, err := s.CreateAlert("user-1", models.AlertRelapseRisk, models.SeverityCritical,
		85, "relapse_prediction", "复发风险", "", nil)
	require.NoError(t, err)

	updated, err := s.MarkAsRead("user-1", alert.ID)

	require.NoError(t, err)
	assert.True(t, updated.IsRead)
	require.NotNil(t, updated.AcknowledgedAt)

	unread, err := s.GetUnreadAlerts("user-1")
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestMarkAsReadRejectsOtherUsers(t *testing.T) {
	db := newTestDB(t)
	s := NewAlertingService(db)

	alert, err := s.CreateAlert("user-1", models.AlertEmotionSpike, models.SeverityHigh,
		2.5, "assessment_submission", "预警", "", nil)
	require.NoError(t, err)

	_, err = s.MarkAsRead("user-2", alert.ID)

	assert.Error(t, err)
}

func TestGetUnreadCount(t *testing.T) {
	db := newTestDB(t)
	s := NewAlertingService(db)

	for i := 0; i < 3; i++ {
		_, err := s.CreateAlert("user-1", models.AlertEmotionSpike, models.SeverityLow,
			float64(i), "assessment_submission", "预警", "", nil)
		require.NoError(t, err)
	}

	count, err := s.GetUnreadCount("user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGetAlertsByDateRange(t *testing.T) {
	db := newTestDB(t)
	s := NewAlertingService(db)

	old, err := s.CreateAlert("user-1", models.AlertEmotionSpike, models.SeverityLow,
		1.0, "assessment_submission", "一周前", "", nil)
	require.NoError(t, err)
	require.NoError(t, db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -7)).Error)
	recent, err := s.CreateAlert("user-1", models.AlertEmotionSpike, models.SeverityLow,
		2.0, "assessment_submission", "今天", "", nil)
	require.NoError(t, err)

	alerts, err := s.GetAlertsByDateRange("user-1", time.Now().AddDate(0, 0, -1), time.Now().Add(time.Hour))

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, recent.ID, alerts[0].ID)
}
