package controllers

import (
	"net/http"

	"MindPulseGo/services"

	"github.com/gin-gonic/gin"
)

// QuestionnaireController 量表目录接口
type QuestionnaireController struct {
	catalog *services.QuestionnaireService
}

func NewQuestionnaireController(catalog *services.QuestionnaireService) *QuestionnaireController {
	return &QuestionnaireController{catalog: catalog}
}

// ListQuestionnaires 查询量表目录，支持keyword与category过滤
func (qc *QuestionnaireController) ListQuestionnaires(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		questionnaires, err := qc.catalog.GetByCategory(category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询量表失败"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"questionnaires": questionnaires})
		return
	}

	questionnaires, err := qc.catalog.Search(c.Query("keyword"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询量表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaires": questionnaires})
}

// SeedDefaults 重新预置内置量表（幂等）
func (qc *QuestionnaireController) SeedDefaults(c *gin.Context) {
	if err := qc.catalog.InitializeDefaultQuestionnaires(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "量表初始化失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "量表初始化完成"})
}

// GetQuestions 查询某量表的题目
func (qc *QuestionnaireController) GetQuestions(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		code = "PHQ-9"
	}

	questions, err := qc.catalog.GetQuestions(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "量表不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": code, "questions": questions})
}
