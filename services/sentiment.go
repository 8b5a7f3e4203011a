package services

import "strings"

// weightedWord 词典条目，权重在[-1,1]
type weightedWord struct {
	word   string
	weight float64
}

// 词典按固定顺序匹配，保证检出词列表稳定
var negativeWords = []weightedWord{
	{"痛苦", -0.9}, {"难过", -0.8}, {"悲伤", -0.8}, {"抑郁", -0.9},
	{"绝望", -1.0}, {"无助", -0.9}, {"孤独", -0.7}, {"疲惫", -0.6},
	{"焦虑", -0.8}, {"害怕", -0.7}, {"恐惧", -0.8}, {"担心", -0.6},
	{"烦躁", -0.6}, {"失眠", -0.7}, {"噩梦", -0.7}, {"厌世", -1.0},
	{"自杀", -1.0}, {"死", -0.9}, {"消失", -0.7}, {"崩溃", -0.9},
	{"无望", -0.9}, {"空虚", -0.7}, {"麻木", -0.7}, {"迷茫", -0.6},
	{"压力", -0.6}, {"沮丧", -0.7},
}

var positiveWords = []weightedWord{
	{"开心", 0.7}, {"快乐", 0.8}, {"幸福", 0.9}, {"希望", 0.8},
	{"乐观", 0.7}, {"积极", 0.7}, {"放松", 0.6}, {"平静", 0.6},
	{"满足", 0.7}, {"充实", 0.7}, {"健康", 0.6}, {"精力", 0.6},
	{"活力", 0.7}, {"温暖", 0.6}, {"爱", 0.8}, {"支持", 0.7},
	{"好转", 0.8}, {"改善", 0.7},
}

var depressionKeywords = []string{
	"抑郁", "悲伤", "绝望", "无助", "空虚", "麻木", "失去兴趣",
	"无价值", "自责", "疲惫", "失眠", "食欲不振",
}

var anxietyKeywords = []string{
	"焦虑", "紧张", "担心", "恐惧", "害怕", "不安", "烦躁",
	"心慌", "出汗", "颤抖", "坐立不安",
}

// SentimentResult 情感分析结果
type SentimentResult struct {
	Score         float64  `json:"score"` // 归一化得分，[-1,1]
	NegativeWords []string `json:"negativeWords"`
	PositiveWords []string `json:"positiveWords"`
	Keywords      []string `json:"keywords"`
	Sentiment     string   `json:"sentiment"`
}

// SentimentText 情感极性的中文描述
func (r *SentimentResult) SentimentText() string {
	switch r.Sentiment {
	case "negative":
		return "消极"
	case "positive":
		return "积极"
	default:
		return "中性"
	}
}

// SentimentAnalysisService 基于词典的中文情感分析。
// 得分为命中词权重的算术平均，不做分词，直接做子串匹配。
type SentimentAnalysisService struct{}

func NewSentimentAnalysisService() *SentimentAnalysisService {
	return &SentimentAnalysisService{}
}

// AnalyzeSentiment 分析文本情感，空文本返回中性
func (s *SentimentAnalysisService) AnalyzeSentiment(text string) *SentimentResult {
	result := &SentimentResult{
		NegativeWords: []string{},
		PositiveWords: []string{},
		Keywords:      []string{},
		Sentiment:     "neutral",
	}

	if strings.TrimSpace(text) == "" {
		return result
	}

	text = strings.ToLower(text)

	totalScore := 0.0
	wordCount := 0

	for _, w := range negativeWords {
		if strings.Contains(text, w.word) {
			totalScore += w.weight
			wordCount++
			result.NegativeWords = append(result.NegativeWords, w.word)
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(text, w.word) {
			totalScore += w.weight
			wordCount++
			result.PositiveWords = append(result.PositiveWords, w.word)
		}
	}

	for _, keyword := range depressionKeywords {
		if strings.Contains(text, keyword) {
			result.Keywords = append(result.Keywords, keyword+"(抑郁)")
		}
	}
	for _, keyword := range anxietyKeywords {
		if strings.Contains(text, keyword) {
			result.Keywords = append(result.Keywords, keyword+"(焦虑)")
		}
	}

	if wordCount > 0 {
		result.Score = clamp(totalScore/float64(wordCount), -1.0, 1.0)
	}

	switch {
	case result.Score < -0.3:
		result.Sentiment = "negative"
	case result.Score > 0.3:
		result.Sentiment = "positive"
	}

	return result
}
