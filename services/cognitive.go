package services

import (
	"fmt"
	"strings"
	"time"

	"MindPulseGo/models"
	"MindPulseGo/utils"

	"gorm.io/gorm"
)

// patternKeywords 各认知扭曲类别的触发词
var patternKeywords = map[models.PatternType][]string{
	models.PatternCatastrophizing: {
		"完蛋了", "糟糕透了", "最坏", "灾难", "毁了", "永远", "再也不会", "必然会",
	},
	models.PatternAllOrNothing: {
		"总是", "从不", "每次都", "绝对", "一定", "完全", "永远", "从来没有",
	},
	models.PatternOvergeneralization: {
		"所有人都", "每个人都", "没有人", "任何", "全部", "都是",
	},
	models.PatternMindReading: {
		"他们一定认为", "肯定觉得我", "别人会想", "他们在想",
	},
	models.PatternFortuneTelling: {
		"肯定会失败", "注定", "一定会", "不会成功", "永远不可能",
	},
	models.PatternEmotionalReasoning: {
		"我感觉", "我觉得自己", "感到", "因为我感觉",
	},
	models.PatternShouldStatements: {
		"应该", "必须", "不得不", "理应", "本该",
	},
	models.PatternLabeling: {
		"我是个", "我就是", "我这种", "我这样的人",
	},
	models.PatternPersonalization: {
		"都是我的错", "是我导致", "怪我", "因为我",
	},
}

var patternDescriptions = map[models.PatternType]string{
	models.PatternCatastrophizing:    "灾难化思维",
	models.PatternAllOrNothing:       "黑白思维/二分法思维",
	models.PatternOvergeneralization: "过度概括",
	models.PatternMindReading:        "读心术",
	models.PatternFortuneTelling:     "算命师思维",
	models.PatternEmotionalReasoning: "情绪化推理",
	models.PatternShouldStatements:   "应该式思维",
	models.PatternLabeling:           "贴标签",
	models.PatternPersonalization:    "个人化/责任归因",
}

var cbtChallenges = map[models.PatternType]string{
	models.PatternCatastrophizing:    "这真的是最坏的情况吗？有没有其他可能的结果？即使最坏的情况发生，我能应对吗？",
	models.PatternAllOrNothing:       "事情真的只有这两种极端吗？是否存在中间地带？我能否用百分比来描述这种情况？",
	models.PatternOvergeneralization: "这是否只是一次或几次的经历？我是否过度推广了单一事件？有没有反例？",
	models.PatternMindReading:        "我真的知道别人在想什么吗？有没有其他可能的解释？我可以直接询问吗？",
	models.PatternFortuneTelling:     "我真的能预测未来吗？有什么证据支持这个预测？过去是否有类似情况结果不同？",
	models.PatternEmotionalReasoning: "仅仅因为我有这种感觉，它就一定是真的吗？有什么客观证据支持或反驳这种感觉？",
	models.PatternShouldStatements:   "这是谁的规则？这个要求现实吗？如果朋友有同样情况，我会对他们说什么？",
	models.PatternLabeling:           "我是一个完整的人，不能用一个标签定义。这个标签准确吗？我有哪些积极特质？",
	models.PatternPersonalization:    "我真的要为所有事情负责吗？有哪些是我无法控制的因素？其他人有什么责任？",
}

var reframingSuggestions = map[models.PatternType]string{
	models.PatternCatastrophizing:    "尝试重新表述：'这确实是个挑战，但我可以一步步应对，最可能的结果是...'",
	models.PatternAllOrNothing:       "尝试重新表述：'这次不够完美，但我在某些方面做得还不错...'",
	models.PatternOvergeneralization: "尝试重新表述：'这次的情况是...，但不代表每次都会这样'",
	models.PatternMindReading:        "尝试重新表述：'我不确定他们在想什么，但我可以询问或观察更多信息'",
	models.PatternFortuneTelling:     "尝试重新表述：'我不能预测未来，但我可以为各种可能性做准备'",
	models.PatternEmotionalReasoning: "尝试重新表述：'我现在有这种感觉，但感觉并不总是反映事实'",
	models.PatternShouldStatements:   "尝试重新表述：'我希望...但如果没做到也没关系，我已经尽力了'",
	models.PatternLabeling:           "尝试重新表述：'我在这件事上表现不佳，但这不能定义我这个人'",
	models.PatternPersonalization:    "尝试重新表述：'我在其中有一部分责任，但也有很多因素是我无法控制的'",
}

// PatternMatch 一类认知扭曲的匹配结果
type PatternMatch struct {
	Type                models.PatternType `json:"type"`
	Description         string             `json:"description"`
	FoundKeywords       []string           `json:"foundKeywords"`
	Confidence          float64            `json:"confidence"`
	Evidence            []string           `json:"evidence"`
	CBTChallenge        string             `json:"cbtChallenge"`
	ReframingSuggestion string             `json:"reframingSuggestion"`
}

// JournalAnalysis 一段文本的认知模式分析结果
type JournalAnalysis struct {
	Patterns       []PatternMatch `json:"patterns"`
	PatternCount   int            `json:"patternCount"`
	OverallRisk    string         `json:"overallRisk"`
	CBTSuggestions []string       `json:"cbtSuggestions"`
}

// PatternTimePoint 时间线上一个有匹配结果的日记点
type PatternTimePoint struct {
	Timestamp    string                `json:"timestamp"`
	PatternCount int                   `json:"patternCount"`
	Patterns     []models.CognitivePattern `json:"patterns"`
}

// PatternTimeline 认知模式随时间的分布
type PatternTimeline struct {
	Timeline       []PatternTimePoint         `json:"timeline"`
	PatternSummary map[models.PatternType]int `json:"patternSummary"`
	TotalEntries   int                        `json:"totalEntries"`
}

// CognitivePatternService 基于关键词的认知扭曲识别，分析是纯函数，
// 同一文本重复分析得到完全相同的结果
type CognitivePatternService struct {
	db *gorm.DB
}

func NewCognitivePatternService(db *gorm.DB) *CognitivePatternService {
	return &CognitivePatternService{db: db}
}

// AnalyzeText 扫描文本中的认知扭曲，按固定类别顺序输出
func (s *CognitivePatternService) AnalyzeText(content string) *JournalAnalysis {
	runes := []rune(content)
	var patterns []PatternMatch

	for _, patternType := range models.AllPatternTypes {
		var foundKeywords, evidence []string
		for _, keyword := range patternKeywords[patternType] {
			idx := strings.Index(content, keyword)
			if idx < 0 {
				continue
			}
			foundKeywords = append(foundKeywords, keyword)
			evidence = append(evidence, evidenceWindow(runes, content, idx, keyword))
		}
		if len(foundKeywords) == 0 {
			continue
		}
		patterns = append(patterns, PatternMatch{
			Type:                patternType,
			Description:         patternDescriptions[patternType],
			FoundKeywords:       foundKeywords,
			Confidence:          patternConfidence(len(foundKeywords)),
			Evidence:            evidence,
			CBTChallenge:        cbtChallenges[patternType],
			ReframingSuggestion: reframingSuggestions[patternType],
		})
	}

	return &JournalAnalysis{
		Patterns:       patterns,
		PatternCount:   len(patterns),
		OverallRisk:    overallPatternRisk(len(patterns)),
		CBTSuggestions: cbtSuggestionsFor(patterns),
	}
}

// evidenceWindow 取首个命中处前10个字、后20个字的上下文。
// 按字符而非字节截取，避免切断多字节汉字。
func evidenceWindow(runes []rune, content string, byteIdx int, keyword string) string {
	runeIdx := len([]rune(content[:byteIdx]))
	start := runeIdx - 10
	if start < 0 {
		start = 0
	}
	end := runeIdx + len([]rune(keyword)) + 20
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

func patternConfidence(keywordCount int) float64 {
	c := 0.3 + float64(keywordCount)*0.15
	if c > 0.9 {
		c = 0.9
	}
	return c
}

func overallPatternRisk(patternCount int) string {
	switch {
	case patternCount >= 5:
		return "HIGH"
	case patternCount >= 3:
		return "MEDIUM"
	case patternCount >= 1:
		return "LOW"
	default:
		return "MINIMAL"
	}
}

func cbtSuggestionsFor(patterns []PatternMatch) []string {
	suggestions := []string{"认知重构练习：尝试用更客观、平衡的方式重新表述你的想法。"}

	for _, p := range patterns {
		if p.Type == models.PatternCatastrophizing {
			suggestions = append(suggestions, "灾难化思维对策：问自己'最可能的结果是什么？'而不是'最坏的结果是什么？'")
		}
	}
	for _, p := range patterns {
		if p.Type == models.PatternAllOrNothing {
			suggestions = append(suggestions, "黑白思维对策：尝试在0-100的量表上评估情况，而不是只有'好'或'坏'两种选择。")
		}
	}

	suggestions = append(suggestions,
		"证据检验：为你的想法寻找支持和反对的证据，保持客观。",
		"自我同情：用对待朋友的方式对待自己，给自己更多理解和宽容。",
	)
	return suggestions
}

// CreateJournalEntry 保存日记并落库分析结果
func (s *CognitivePatternService) CreateJournalEntry(userID, content, entryType string) (*models.JournalEntry, *JournalAnalysis, error) {
	analysis := s.AnalyzeText(content)

	entry := models.JournalEntry{
		ID:             utils.GenerateID(),
		UserID:         userID,
		Content:        content,
		EntryType:      entryType,
		OverallRisk:    analysis.OverallRisk,
		CBTSuggestions: strings.Join(analysis.CBTSuggestions, "\n\n"),
		CreatedAt:      time.Now(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, nil, fmt.Errorf("保存日记失败: %w", err)
	}

	for _, match := range analysis.Patterns {
		pattern := models.CognitivePattern{
			ID:                  utils.GenerateID(),
			JournalEntryID:      entry.ID,
			PatternType:         match.Type,
			Description:         match.Description,
			MatchedKeywords:     strings.Join(match.FoundKeywords, ","),
			EvidenceText:        strings.Join(match.Evidence, "; "),
			ConfidenceScore:     match.Confidence,
			CBTChallenge:        match.CBTChallenge,
			ReframingSuggestion: match.ReframingSuggestion,
			CreatedAt:           entry.CreatedAt,
		}
		if err := s.db.Create(&pattern).Error; err != nil {
			return nil, nil, fmt.Errorf("保存认知模式失败: %w", err)
		}
	}

	return &entry, analysis, nil
}

// GetUserJournalEntries 按时间倒序返回日记
func (s *CognitivePatternService) GetUserJournalEntries(userID string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("查询日记失败: %w", err)
	}
	return entries, nil
}

// GetPatternTimeline 汇总用户各类认知扭曲的出现频次与时间线
func (s *CognitivePatternService) GetPatternTimeline(userID string) (*PatternTimeline, error) {
	var entries []models.JournalEntry
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("查询日记失败: %w", err)
	}

	counts := make(map[models.PatternType]int)
	var timeline []PatternTimePoint

	for _, entry := range entries {
		var patterns []models.CognitivePattern
		if err := s.db.Where("journal_entry_id = ?", entry.ID).Find(&patterns).Error; err != nil {
			continue
		}
		if len(patterns) == 0 {
			continue
		}
		timeline = append(timeline, PatternTimePoint{
			Timestamp:    entry.CreatedAt.Format(time.RFC3339),
			PatternCount: len(patterns),
			Patterns:     patterns,
		})
		for _, p := range patterns {
			counts[p.PatternType]++
		}
	}

	return &PatternTimeline{
		Timeline:       timeline,
		PatternSummary: counts,
		TotalEntries:   len(entries),
	}, nil
}
