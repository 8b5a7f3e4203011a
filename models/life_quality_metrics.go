package models

import "time"

// 生活质量的8个固定维度，均为0-10分
const (
	DimSleepQuality        = "sleepQuality"
	DimSocialInteraction   = "socialInteraction"
	DimPhysicalActivity    = "physicalActivity"
	DimWorkProductivity    = "workProductivity"
	DimSatisfaction        = "satisfaction"
	DimRelationships       = "relationships"
	DimSelfCare            = "selfCare"
	DimEnjoyableActivities = "enjoyableActivities"
)

// LifeQualityDimensions 维度的固定顺序
var LifeQualityDimensions = []string{
	DimSleepQuality, DimSocialInteraction, DimPhysicalActivity, DimWorkProductivity,
	DimSatisfaction, DimRelationships, DimSelfCare, DimEnjoyableActivities,
}

// LifeQualityDimensionLabels 维度中文名
var LifeQualityDimensionLabels = map[string]string{
	DimSleepQuality:        "睡眠质量",
	DimSocialInteraction:   "社交互动",
	DimPhysicalActivity:    "身体活动",
	DimWorkProductivity:    "工作效率",
	DimSatisfaction:        "生活满意度",
	DimRelationships:       "人际关系",
	DimSelfCare:            "自我照顾",
	DimEnjoyableActivities: "愉快活动",
}

// LifeQualityMetrics 生活质量打卡记录
type LifeQualityMetrics struct {
	ID                  string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID              string     `gorm:"type:varchar(50);index" json:"userId"`
	SleepQuality        *float64   `json:"sleepQuality"`
	SocialInteraction   *float64   `json:"socialInteraction"`
	PhysicalActivity    *float64   `json:"physicalActivity"`
	WorkProductivity    *float64   `json:"workProductivity"`
	Satisfaction        *float64   `json:"satisfaction"`
	Relationships       *float64   `json:"relationships"`
	SelfCare            *float64   `json:"selfCare"`
	EnjoyableActivities *float64   `json:"enjoyableActivities"`
	OverallScore        float64    `json:"overallScore"` // 已填维度的算术平均，保留1位小数
	Notes               string     `gorm:"type:text" json:"notes"`
	AssessmentRecordID  *string    `gorm:"type:varchar(50)" json:"assessmentRecordId"`
	RecordedAt          time.Time  `json:"recordedAt"`
}

// DimensionScores 按固定维度顺序导出打分，未填维度为nil
func (m *LifeQualityMetrics) DimensionScores() map[string]*float64 {
	return map[string]*float64{
		DimSleepQuality:        m.SleepQuality,
		DimSocialInteraction:   m.SocialInteraction,
		DimPhysicalActivity:    m.PhysicalActivity,
		DimWorkProductivity:    m.WorkProductivity,
		DimSatisfaction:        m.Satisfaction,
		DimRelationships:       m.Relationships,
		DimSelfCare:            m.SelfCare,
		DimEnjoyableActivities: m.EnjoyableActivities,
	}
}
