package models

import (
	"fmt"
)

// SubmitAssessmentRequest 量表提交请求结构体
type SubmitAssessmentRequest struct {
	QuestionnaireCode string             `json:"questionnaireCode"`
	Answers           []int              `json:"answers" binding:"required"`
	SentimentText     string             `json:"sentimentText"`
	VoiceFeatures     map[string]float64 `json:"voiceFeatures"`
	CameraData        *CameraData        `json:"cameraData"`
}

// Validate 只拒绝空答卷，形状问题（缺项、负值）由提交管线按0兜底
func (r *SubmitAssessmentRequest) Validate() error {
	if len(r.Answers) == 0 {
		return fmt.Errorf("答案不能为空")
	}
	return nil
}

// CameraData 活动传感器摘要，由上游设备端计算
type CameraData struct {
	ActivityLevel float64 `json:"activityLevel"` // 0-100
	PostureScore  float64 `json:"postureScore"`  // 0-100
	MovementCount int     `json:"movementCount"`
}

// RecordLifeQualityRequest 生活质量打卡请求结构体
type RecordLifeQualityRequest struct {
	Dimensions map[string]float64 `json:"dimensions" binding:"required"`
	Notes      string             `json:"notes"`
}

func (r *RecordLifeQualityRequest) Validate() error {
	if len(r.Dimensions) == 0 {
		return fmt.Errorf("至少需要填写一个维度")
	}
	for name, score := range r.Dimensions {
		if _, ok := LifeQualityDimensionLabels[name]; !ok {
			return fmt.Errorf("未知的维度: %s", name)
		}
		if score < 0 || score > 10 {
			return fmt.Errorf("维度 %s 的分值必须在0-10之间", name)
		}
	}
	return nil
}

// CreateJournalRequest 日记创建请求结构体
type CreateJournalRequest struct {
	Content   string `json:"content" binding:"required"`
	EntryType string `json:"entryType"`
}

// AssignTaskRequest 行为激活任务分配请求结构体
type AssignTaskRequest struct {
	TaskName        string   `json:"taskName" binding:"required"`
	TaskDescription string   `json:"taskDescription"`
	DifficultyLevel string   `json:"difficultyLevel"`
	Category        string   `json:"category"`
	MoodBefore      *float64 `json:"moodBefore"`
}

// CompleteTaskRequest 任务完成请求结构体
type CompleteTaskRequest struct {
	Rating    *int     `json:"rating"`
	Feedback  string   `json:"feedback"`
	MoodAfter *float64 `json:"moodAfter"`
}
