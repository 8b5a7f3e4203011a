package controllers

import (
	"net/http"
	"strconv"

	"MindPulseGo/models"
	"MindPulseGo/services"

	"github.com/gin-gonic/gin"
)

// TaskController 行为激活任务接口
type TaskController struct {
	tasks *services.BehavioralTaskService
}

func NewTaskController(tasks *services.BehavioralTaskService) *TaskController {
	return &TaskController{tasks: tasks}
}

// SuggestTasks 生成个性化候选任务，count参数默认3
func (tc *TaskController) SuggestTasks(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	count := 3
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count参数必须在1-8之间"})
			return
		}
		count = parsed
	}

	recommendations, err := tc.tasks.GeneratePersonalizedTasks(uid.(string), count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务生成失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": recommendations})
}

// AssignTask 分配一个任务
func (tc *TaskController) AssignTask(c *gin.Context) {
	var req models.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	task, err := tc.tasks.AssignTask(uid.(string), req.TaskName, req.TaskDescription,
		req.DifficultyLevel, req.Category, req.MoodBefore)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务分配失败"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// CompleteTask 标记任务完成
func (tc *TaskController) CompleteTask(c *gin.Context) {
	var req models.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, exists := c.Get("uid"); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	task, err := tc.tasks.CompleteTask(c.Param("id"), req.Rating, req.Feedback, req.MoodAfter)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetHistory 查询任务历史统计
func (tc *TaskController) GetHistory(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	history, err := tc.tasks.GetTaskHistory(uid.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询任务历史失败"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetTopTasks 查询情绪提升效果最好的任务
func (tc *TaskController) GetTopTasks(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	top, err := tc.tasks.GetTopPerformingTasks(uid.(string), 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询任务失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": top})
}
