package services

import (
	"fmt"
	"time"

	"MindPulseGo/config"
	"MindPulseGo/models"
	"MindPulseGo/utils"

	"gorm.io/gorm"
)

// AlertingService 预警的追加式写入与已读管理。检测器只在创建时写入，
// 之后仅允许标记已读。
type AlertingService struct {
	db *gorm.DB
}

func NewAlertingService(db *gorm.DB) *AlertingService {
	return &AlertingService{db: db}
}

func unreadCountKey(userID string) string {
	return fmt.Sprintf("alert:unread:%s", userID)
}

// CreateAlert 创建一条预警
func (s *AlertingService) CreateAlert(userID string, alertType models.AlertType,
	severity models.AlertSeverity, value float64, triggerSource, message, recommendation string,
	recordID *string) (*models.EmotionAlert, error) {

	alert := models.EmotionAlert{
		ID:                 utils.GenerateID(),
		UserID:             userID,
		AlertType:          alertType,
		Severity:           severity,
		Value:              value,
		TriggerSource:      triggerSource,
		Message:            message,
		Recommendation:     recommendation,
		AssessmentRecordID: recordID,
		CreatedAt:          time.Now(),
	}

	if err := s.db.Create(&alert).Error; err != nil {
		return nil, fmt.Errorf("创建预警失败: %w", err)
	}

	s.invalidateUnreadCache(userID)

	if config.Logger != nil {
		config.Logger.Infow("创建情绪预警",
			"userId", userID,
			"alertType", alertType,
			"severity", severity,
			"value", value,
			"source", triggerSource,
		)
	}

	return &alert, nil
}

// GetUnreadAlerts 按创建时间倒序返回未读预警
func (s *AlertingService) GetUnreadAlerts(userID string) ([]models.EmotionAlert, error) {
	var alerts []models.EmotionAlert
	err := s.db.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("查询未读预警失败: %w", err)
	}
	return alerts, nil
}

// GetAllAlerts 按创建时间倒序返回全部预警
func (s *AlertingService) GetAllAlerts(userID string) ([]models.EmotionAlert, error) {
	var alerts []models.EmotionAlert
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("查询预警失败: %w", err)
	}
	return alerts, nil
}

// GetAlertsByDateRange 查询时间窗内的预警
func (s *AlertingService) GetAlertsByDateRange(userID string, start, end time.Time) ([]models.EmotionAlert, error) {
	var alerts []models.EmotionAlert
	err := s.db.Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Order("created_at DESC").Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("查询预警失败: %w", err)
	}
	return alerts, nil
}

// MarkAsRead 标记已读并记录确认时间，只能操作本人的预警
func (s *AlertingService) MarkAsRead(userID, alertID string) (*models.EmotionAlert, error) {
	var alert models.EmotionAlert
	if err := s.db.Where("id = ? AND user_id = ?", alertID, userID).First(&alert).Error; err != nil {
		return nil, fmt.Errorf("预警不存在: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_read":         true,
		"acknowledged_at": &now,
	}
	if err := s.db.Model(&alert).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("标记已读失败: %w", err)
	}

	alert.IsRead = true
	alert.AcknowledgedAt = &now
	s.invalidateUnreadCache(alert.UserID)

	return &alert, nil
}

// GetUnreadCount 未读数量，优先读Redis缓存
func (s *AlertingService) GetUnreadCount(userID string) (int64, error) {
	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(config.RedisCtx, unreadCountKey(userID)).Int64()
		if err == nil {
			return cached, nil
		}
	}

	var count int64
	err := s.db.Model(&models.EmotionAlert{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计未读预警失败: %w", err)
	}

	if config.RedisClient != nil {
		config.RedisClient.Set(config.RedisCtx, unreadCountKey(userID), count, 5*time.Minute)
	}

	return count, nil
}

func (s *AlertingService) invalidateUnreadCache(userID string) {
	if config.RedisClient != nil {
		config.RedisClient.Del(config.RedisCtx, unreadCountKey(userID))
	}
}
