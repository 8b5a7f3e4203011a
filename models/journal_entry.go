package models

import "time"

// PatternType 认知扭曲类别，封闭枚举
type PatternType string

const (
	PatternCatastrophizing    PatternType = "CATASTROPHIZING"
	PatternAllOrNothing       PatternType = "ALL_OR_NOTHING"
	PatternOvergeneralization PatternType = "OVERGENERALIZATION"
	PatternMindReading        PatternType = "MIND_READING"
	PatternFortuneTelling     PatternType = "FORTUNE_TELLING"
	PatternEmotionalReasoning PatternType = "EMOTIONAL_REASONING"
	PatternShouldStatements   PatternType = "SHOULD_STATEMENTS"
	PatternLabeling           PatternType = "LABELING"
	PatternPersonalization    PatternType = "PERSONALIZATION"
)

// AllPatternTypes 类别的固定遍历顺序，保证同一文本两次分析结果一致
var AllPatternTypes = []PatternType{
	PatternCatastrophizing, PatternAllOrNothing, PatternOvergeneralization,
	PatternMindReading, PatternFortuneTelling, PatternEmotionalReasoning,
	PatternShouldStatements, PatternLabeling, PatternPersonalization,
}

// JournalEntry 日记条目，认知模式分析结果在创建时一次性生成
type JournalEntry struct {
	ID             string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID         string    `gorm:"type:varchar(50);index" json:"userId"`
	Content        string    `gorm:"type:text" json:"content"`
	EntryType      string    `gorm:"type:varchar(20)" json:"entryType"`
	OverallRisk    string    `gorm:"type:varchar(10)" json:"overallRisk"`
	CBTSuggestions string    `gorm:"type:text" json:"cbtSuggestions"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CognitivePattern 单条认知扭曲匹配结果，归属于日记条目
type CognitivePattern struct {
	ID                  string      `gorm:"type:varchar(50);primaryKey" json:"id"`
	JournalEntryID      string      `gorm:"type:varchar(50);index" json:"journalEntryId"`
	PatternType         PatternType `gorm:"type:varchar(30)" json:"patternType"`
	Description         string      `gorm:"type:varchar(50)" json:"description"`
	MatchedKeywords     string      `gorm:"type:text" json:"matchedKeywords"`
	EvidenceText        string      `gorm:"type:text" json:"evidenceText"`
	ConfidenceScore     float64     `json:"confidenceScore"`
	CBTChallenge        string      `gorm:"type:text" json:"cbtChallenge"`
	ReframingSuggestion string      `gorm:"type:text" json:"reframingSuggestion"`
	CreatedAt           time.Time   `json:"createdAt"`
}
