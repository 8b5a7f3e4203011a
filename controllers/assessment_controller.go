package controllers

import (
	"net/http"
	"strconv"
	"time"

	"MindPulseGo/models"
	"MindPulseGo/services"

	"github.com/gin-gonic/gin"
)

// AssessmentController 量表提交与纵向分析接口
type AssessmentController struct {
	assessment  *services.AssessmentService
	relapse     *services.RelapsePredictionService
	correlation *services.CorrelationService
	wave        *services.EmotionWaveService
	onlineAI    *services.OnlineAIService
}

func NewAssessmentController(assessment *services.AssessmentService,
	relapse *services.RelapsePredictionService,
	correlation *services.CorrelationService,
	wave *services.EmotionWaveService,
	onlineAI *services.OnlineAIService) *AssessmentController {
	return &AssessmentController{
		assessment:  assessment,
		relapse:     relapse,
		correlation: correlation,
		wave:        wave,
		onlineAI:    onlineAI,
	}
}

// SubmitAssessment 提交一次量表评估
func (ac *AssessmentController) SubmitAssessment(c *gin.Context) {
	var req models.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	result, err := ac.assessment.SubmitAssessment(uid.(string), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHistory 查询评估历史
func (ac *AssessmentController) GetHistory(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var records []models.AssessmentRecord
	var err error
	switch {
	case c.Query("start") != "" && c.Query("end") != "":
		start, perr := time.Parse(time.RFC3339, c.Query("start"))
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start参数格式错误"})
			return
		}
		end, perr := time.Parse(time.RFC3339, c.Query("end"))
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end参数格式错误"})
			return
		}
		records, err = ac.assessment.GetHistoryInRange(uid.(string), start, end)
	case c.Query("minRisk") != "":
		minRisk, perr := strconv.ParseFloat(c.Query("minRisk"), 64)
		if perr != nil || minRisk < 0 || minRisk > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minRisk参数必须在0-1之间"})
			return
		}
		records, err = ac.assessment.GetHighRiskRecords(uid.(string), minRisk)
	default:
		records, err = ac.assessment.GetHistory(uid.(string))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询评估历史失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// GetTrend 查询短窗趋势
func (ac *AssessmentController) GetTrend(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	trend, err := ac.assessment.GetTrend(uid.(string), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "趋势分析失败"})
		return
	}

	c.JSON(http.StatusOK, trend)
}

// GetWavePattern 查询情绪波动总览与形态
func (ac *AssessmentController) GetWavePattern(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	overview, err := ac.wave.AnalyzeEmotionWave(uid.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "波动分析失败"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// PredictRelapse 复发风险预测，days参数默认30天
func (ac *AssessmentController) PredictRelapse(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 7 || parsed > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days参数必须在7-90之间"})
			return
		}
		days = parsed
	}

	prediction, err := ac.relapse.PredictRelapseRisk(uid.(string), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "复发预测失败"})
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// GetSleepMoodCorrelation 睡眠与情绪相关性分析
func (ac *AssessmentController) GetSleepMoodCorrelation(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	correlation, err := ac.correlation.AnalyzeSleepMoodCorrelation(uid.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "相关性分析失败"})
		return
	}

	c.JSON(http.StatusOK, correlation)
}

// EnhanceSentiment 在线AI情感增强，不可用时自动降级
func (ac *AssessmentController) EnhanceSentiment(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, exists := c.Get("uid"); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	result := ac.onlineAI.EnhanceSentimentAnalysis(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, result)
}
