package models

import "time"

// AlertType 预警类型，消费端必须穷举处理
type AlertType string

const (
	AlertEmotionSpike   AlertType = "EMOTION_SPIKE"
	AlertWorseningTrend AlertType = "WORSENING_TREND"
	AlertRelapseRisk    AlertType = "RELAPSE_RISK"
)

// AlertSeverity 预警严重程度
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// EmotionAlert 情绪预警，由检测器创建，之后只允许标记已读
type EmotionAlert struct {
	ID                 string        `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID             string        `gorm:"type:varchar(50);index" json:"userId"`
	AlertType          AlertType     `gorm:"type:varchar(30)" json:"alertType"`
	Severity           AlertSeverity `gorm:"type:varchar(20)" json:"severity"`
	Value              float64       `json:"value"` // 触发预警的数值
	TriggerSource      string        `gorm:"type:varchar(30)" json:"triggerSource"`
	Message            string        `gorm:"type:text" json:"message"`
	Recommendation     string        `gorm:"type:text" json:"recommendation"`
	IsRead             bool          `gorm:"default:false" json:"isRead"`
	AssessmentRecordID *string       `gorm:"type:varchar(50)" json:"assessmentRecordId"`
	CreatedAt          time.Time     `json:"createdAt"`
	AcknowledgedAt     *time.Time    `json:"acknowledgedAt"`
}
