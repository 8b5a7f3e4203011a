package models

import (
	"encoding/json"
	"time"
)

// AssessmentRecord 量表评估记录，一次提交对应一条，创建后不再修改
type AssessmentRecord struct {
	ID                string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID            string    `gorm:"type:varchar(50);index:idx_assessment_user_time" json:"userId"`
	QuestionnaireCode string    `gorm:"type:varchar(20)" json:"questionnaireCode"`
	AnswersJSON       string    `gorm:"type:varchar(2000)" json:"-"`
	TotalScore        int       `json:"totalScore"`
	Level             string    `gorm:"type:varchar(20)" json:"level"`
	SentimentText     string    `gorm:"type:text" json:"sentimentText"`
	SentimentScore    *float64  `json:"sentimentScore"`
	RiskScore         float64   `json:"riskScore"` // 融合风险评分，始终在[0,1]
	AnomalyDetected   bool      `json:"anomalyDetected"`
	VoiceEmotionScore *float64  `json:"voiceEmotionScore"`
	VoiceFeaturesJSON string    `gorm:"type:text" json:"-"`
	CameraDataJSON    string    `gorm:"type:text" json:"-"`
	CreatedAt         time.Time `gorm:"index:idx_assessment_user_time" json:"createdAt"`
}

// Answers 解析答案向量，解析失败时返回空切片
func (r *AssessmentRecord) Answers() []int {
	var answers []int
	if r.AnswersJSON == "" {
		return answers
	}
	if err := json.Unmarshal([]byte(r.AnswersJSON), &answers); err != nil {
		return []int{}
	}
	return answers
}

// SetAnswers 序列化答案向量并同步总分
func (r *AssessmentRecord) SetAnswers(answers []int) {
	data, _ := json.Marshal(answers)
	r.AnswersJSON = string(data)
	total := 0
	for _, a := range answers {
		total += a
	}
	r.TotalScore = total
}

// VoiceFeatures 解析语音声学特征
func (r *AssessmentRecord) VoiceFeatures() map[string]float64 {
	features := make(map[string]float64)
	if r.VoiceFeaturesJSON == "" {
		return features
	}
	if err := json.Unmarshal([]byte(r.VoiceFeaturesJSON), &features); err != nil {
		return map[string]float64{}
	}
	return features
}
