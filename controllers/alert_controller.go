package controllers

import (
	"net/http"

	"MindPulseGo/models"
	"MindPulseGo/services"

	"github.com/gin-gonic/gin"
)

// AlertController 情绪预警接口
type AlertController struct {
	alerting *services.AlertingService
}

func NewAlertController(alerting *services.AlertingService) *AlertController {
	return &AlertController{alerting: alerting}
}

// ListUnread 查询未读预警与未读数
func (ac *AlertController) ListUnread(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	alerts, err := ac.alerting.GetUnreadAlerts(uid.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询预警失败"})
		return
	}
	count, err := ac.alerting.GetUnreadCount(uid.(string))
	if err != nil {
		count = int64(len(alerts))
	}

	c.JSON(http.StatusOK, models.AlertListResponse{Alerts: alerts, UnreadCount: count})
}

// ListAll 查询全部预警
func (ac *AlertController) ListAll(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	alerts, err := ac.alerting.GetAllAlerts(uid.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询预警失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// MarkAsRead 标记预警已读
func (ac *AlertController) MarkAsRead(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	alertID := c.Param("id")
	alert, err := ac.alerting.MarkAsRead(uid.(string), alertID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "预警不存在"})
		return
	}

	c.JSON(http.StatusOK, alert)
}
