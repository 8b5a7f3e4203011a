package services

import (
	"testing"

	"MindPulseGo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTextEmptyContent(t *testing.T) {
	s := NewCognitivePatternService(nil)

	analysis := s.AnalyzeText("")

	assert.Equal(t, 0, analysis.PatternCount)
	assert.Equal(t, "MINIMAL", analysis.OverallRisk)
	// 基础建议与收尾建议始终存在
	assert.Len(t, analysis.CBTSuggestions, 3)
}

func TestAnalyzeTextDetectsCatastrophizing(t *testing.T) {
	s := NewCognitivePatternService(nil)

	analysis := s.AnalyzeText("这次搞砸了，一切都完蛋了，简直是灾难")

	require.GreaterOrEqual(t, analysis.PatternCount, 1)
	first := analysis.Patterns[0]
	assert.Equal(t, models.PatternCatastrophizing, first.Type)
	assert.Contains(t, first.FoundKeywords, "完蛋了")
	assert.Contains(t, first.FoundKeywords, "灾难")
	assert.NotEmpty(t, first.CBTChallenge)
	assert.NotEmpty(t, first.ReframingSuggestion)
}

func TestAnalyzeTextFixedCategoryOrder(t *testing.T) {
	s := NewCognitivePatternService(nil)

	// 同时命中贴标签和灾难化，输出顺序按固定类别顺序
	analysis := s.AnalyzeText("我是个失败者，一切都完蛋了")

	require.Equal(t, 2, analysis.PatternCount)
	assert.Equal(t, models.PatternCatastrophizing, analysis.Patterns[0].Type)
	assert.Equal(t, models.PatternLabeling, analysis.Patterns[1].Type)
}

func TestAnalyzeTextDeterministic(t *testing.T) {
	s := NewCognitivePatternService(nil)
	content := "我总是把事情搞砸，所有人都觉得我不行，都是我的错"

	first := s.AnalyzeText(content)
	second := s.AnalyzeText(content)

	assert.Equal(t, first, second)
}

func TestAnalyzeTextEvidenceContainsKeyword(t *testing.T) {
	s := NewCognitivePatternService(nil)

	analysis := s.AnalyzeText("昨天的面试彻底完蛋了，我不知道该怎么办")

	require.GreaterOrEqual(t, analysis.PatternCount, 1)
	require.NotEmpty(t, analysis.Patterns[0].Evidence)
	assert.Contains(t, analysis.Patterns[0].Evidence[0], "完蛋了")
}

func TestPatternConfidence(t *testing.T) {
	assert.InDelta(t, 0.45, patternConfidence(1), 1e-9)
	assert.InDelta(t, 0.6, patternConfidence(2), 1e-9)
	// 上限0.9
	assert.InDelta(t, 0.9, patternConfidence(10), 1e-9)
}

func TestOverallPatternRisk(t *testing.T) {
	assert.Equal(t, "MINIMAL", overallPatternRisk(0))
	assert.Equal(t, "LOW", overallPatternRisk(1))
	assert.Equal(t, "MEDIUM", overallPatternRisk(3))
	assert.Equal(t, "HIGH", overallPatternRisk(5))
}

func TestCreateJournalEntryPersistsPatterns(t *testing.T) {
	db := newTestDB(t)
	s := NewCognitivePatternService(db)

	entry, analysis, err := s.CreateJournalEntry("user-1", "一切都完蛋了，都是我的错", "free")

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "user-1", entry.UserID)
	assert.NotEmpty(t, entry.ID)

	var patterns []models.CognitivePattern
	require.NoError(t, db.Where("journal_entry_id = ?", entry.ID).Find(&patterns).Error)
	assert.Len(t, patterns, analysis.PatternCount)
}

func TestGetPatternTimeline(t *testing.T) {
	db := newTestDB(t)
	s := NewCognitivePatternService(db)

	_, _, err := s.CreateJournalEntry("user-1", "一切都完蛋了", "free")
	require.NoError(t, err)
	_, _, err = s.CreateJournalEntry("user-1", "今天天气不错", "free")
	require.NoError(t, err)

	timeline, err := s.GetPatternTimeline("user-1")

	require.NoError(t, err)
	assert.Equal(t, 2, timeline.TotalEntries)
	// 无命中的日记不出现在时间线上
	assert.Len(t, timeline.Timeline, 1)
	assert.Equal(t, 1, timeline.PatternSummary[models.PatternCatastrophizing])
}
