package models

import "time"

// Questionnaire 量表目录项
type Questionnaire struct {
	ID             string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Code           string    `gorm:"type:varchar(20);uniqueIndex" json:"code"`
	Name           string    `gorm:"type:varchar(100)" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Category       string    `gorm:"type:varchar(30)" json:"category"`
	TotalQuestions int       `json:"totalQuestions"`
	MaxScore       int       `json:"maxScore"`
	IsActive       bool      `gorm:"default:true" json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Question 量表题目，选项为固定4级（0-3分）
type Question struct {
	ID                string `gorm:"type:varchar(50);primaryKey" json:"id"`
	QuestionnaireCode string `gorm:"type:varchar(20);index" json:"questionnaireCode"`
	QuestionNumber    int    `json:"questionNumber"`
	Text              string `gorm:"type:text" json:"text"`
	Option0           string `gorm:"type:varchar(50)" json:"option0"`
	Option1           string `gorm:"type:varchar(50)" json:"option1"`
	Option2           string `gorm:"type:varchar(50)" json:"option2"`
	Option3           string `gorm:"type:varchar(50)" json:"option3"`
	MaxPoints         int    `json:"maxPoints"`
}
