package controllers

import (
	"net/http"

	"MindPulseGo/models"
	"MindPulseGo/services"

	"github.com/gin-gonic/gin"
)

// LifeQualityController 生活质量打卡与仪表盘接口
type LifeQualityController struct {
	lifeQuality *services.LifeQualityService
}

func NewLifeQualityController(lifeQuality *services.LifeQualityService) *LifeQualityController {
	return &LifeQualityController{lifeQuality: lifeQuality}
}

// RecordMetrics 提交一次生活质量打卡
func (lc *LifeQualityController) RecordMetrics(c *gin.Context) {
	var req models.RecordLifeQualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	scores := make(map[string]*float64, len(req.Dimensions))
	for name, value := range req.Dimensions {
		v := value
		scores[name] = &v
	}

	metrics, err := lc.lifeQuality.RecordMetrics(uid.(string), scores, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生活质量记录失败"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// GetDashboard 查询生活质量仪表盘
func (lc *LifeQualityController) GetDashboard(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	dashboard, err := lc.lifeQuality.GetDashboard(uid.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询仪表盘失败"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
