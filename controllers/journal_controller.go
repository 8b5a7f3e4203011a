package controllers

import (
	"net/http"

	"MindPulseGo/models"
	"MindPulseGo/services"

	"github.com/gin-gonic/gin"
)

// JournalController 日记与认知模式接口
type JournalController struct {
	cognitive *services.CognitivePatternService
}

func NewJournalController(cognitive *services.CognitivePatternService) *JournalController {
	return &JournalController{cognitive: cognitive}
}

// CreateEntry 创建日记并返回认知模式分析
func (jc *JournalController) CreateEntry(c *gin.Context) {
	var req models.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = "free"
	}

	entry, analysis, err := jc.cognitive.CreateJournalEntry(uid.(string), req.Content, entryType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "日记保存失败"})
		return
	}

	resp := models.JournalAnalysisResponse{
		EntryID:        entry.ID,
		PatternCount:   analysis.PatternCount,
		OverallRisk:    analysis.OverallRisk,
		CBTSuggestions: analysis.CBTSuggestions,
	}
	for _, p := range analysis.Patterns {
		resp.Patterns = append(resp.Patterns, models.PatternFinding{
			Type:                p.Type,
			Description:         p.Description,
			FoundKeywords:       p.FoundKeywords,
			Evidence:            p.Evidence,
			Confidence:          p.Confidence,
			CBTChallenge:        p.CBTChallenge,
			ReframingSuggestion: p.ReframingSuggestion,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// ListEntries 查询日记列表
func (jc *JournalController) ListEntries(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	entries, err := jc.cognitive.GetUserJournalEntries(uid.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询日记失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// GetPatternTimeline 查询认知模式时间线
func (jc *JournalController) GetPatternTimeline(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	timeline, err := jc.cognitive.GetPatternTimeline(uid.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询认知模式时间线失败"})
		return
	}

	c.JSON(http.StatusOK, timeline)
}
