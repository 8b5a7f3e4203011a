package models

import "time"

// AssessmentResultResponse 量表提交后的完整分析结果响应结构体
type AssessmentResultResponse struct {
	RecordID        string               `json:"recordId"`
	TotalScore      int                  `json:"totalScore"`
	Level           string               `json:"level"`
	RiskScore       float64              `json:"riskScore"`
	Cluster         string               `json:"cluster"`
	Intervention    string               `json:"intervention"`
	AnomalyDetected bool                 `json:"anomalyDetected"`
	Anomalies       []string             `json:"anomalies"`
	Sentiment       *SentimentResponse   `json:"sentiment,omitempty"`
	VoiceScore      *VoiceScoreResponse  `json:"voiceScore,omitempty"`
	Trend           *TrendResponse       `json:"trend,omitempty"`
	Recommendations []RecommendationItem `json:"recommendations"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// SentimentResponse 文本情感分析响应结构体
type SentimentResponse struct {
	Score         float64  `json:"score"`
	Sentiment     string   `json:"sentiment"`
	NegativeWords []string `json:"negativeWords"`
	PositiveWords []string `json:"positiveWords"`
	Keywords      []string `json:"keywords"`
}

// VoiceScoreResponse 声学抑郁评分响应结构体
type VoiceScoreResponse struct {
	DepressionScore float64 `json:"depressionScore"`
	DepressionLevel string  `json:"depressionLevel"`
	FeatureCount    int     `json:"featureCount"`
}

// TrendResponse 趋势分析响应结构体
type TrendResponse struct {
	Trend              string   `json:"trend"`
	TrendText          string   `json:"trendText"`
	Slope              float64  `json:"slope"`
	PredictedNextScore *float64 `json:"predictedNextScore"`
}

// RecommendationItem 单条干预建议
type RecommendationItem struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Priority    string `json:"priority"`
}

// AlertListResponse 预警列表响应结构体
type AlertListResponse struct {
	Alerts      []EmotionAlert `json:"alerts"`
	UnreadCount int64          `json:"unreadCount"`
}

// JournalAnalysisResponse 日记认知模式分析响应结构体
type JournalAnalysisResponse struct {
	EntryID        string           `json:"entryId"`
	Patterns       []PatternFinding `json:"patterns"`
	PatternCount   int              `json:"patternCount"`
	OverallRisk    string           `json:"overallRisk"`
	CBTSuggestions []string         `json:"cbtSuggestions"`
}

// PatternFinding 单条认知扭曲匹配结果（响应用）
type PatternFinding struct {
	Type                PatternType `json:"type"`
	Description         string      `json:"description"`
	FoundKeywords       []string    `json:"foundKeywords"`
	Evidence            []string    `json:"evidence"`
	Confidence          float64     `json:"confidence"`
	CBTChallenge        string      `json:"cbtChallenge"`
	ReframingSuggestion string      `json:"reframingSuggestion"`
}
