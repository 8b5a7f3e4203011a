package models

import "time"

// BehavioralTask 行为激活任务的分配与完成记录
type BehavioralTask struct {
	ID               string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID           string     `gorm:"type:varchar(50);index" json:"userId"`
	TaskName         string     `gorm:"type:varchar(100)" json:"taskName"`
	TaskDescription  string     `gorm:"type:text" json:"taskDescription"`
	DifficultyLevel  string     `gorm:"type:varchar(10)" json:"difficultyLevel"`
	Category         string     `gorm:"type:varchar(30)" json:"category"`
	Completed        bool       `gorm:"default:false" json:"completed"`
	CompletionRating *int       `json:"completionRating"`
	Feedback         string     `gorm:"type:text" json:"feedback"`
	MoodBefore       *float64   `json:"moodBefore"`
	MoodAfter        *float64   `json:"moodAfter"`
	AssignedAt       time.Time  `json:"assignedAt"`
	CompletedAt      *time.Time `json:"completedAt"`
}
