package routes

import (
	"MindPulseGo/config"
	"MindPulseGo/controllers"
	"MindPulseGo/middleware"
	"MindPulseGo/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, client *services.DeepseekClient) {
	alerting := services.NewAlertingService(config.DB)
	assessment := services.NewAssessmentService(config.DB, alerting)
	relapse := services.NewRelapsePredictionService(config.DB, alerting)
	correlation := services.NewCorrelationService(config.DB)
	wave := services.NewEmotionWaveService(config.DB, alerting)
	lifeQuality := services.NewLifeQualityService(config.DB)
	cognitive := services.NewCognitivePatternService(config.DB)
	tasks := services.NewBehavioralTaskService(config.DB)
	catalog := services.NewQuestionnaireService(config.DB)
	onlineAI := services.NewOnlineAIService(client, services.NewSentimentAnalysisService(), client != nil)

	authController := controllers.AuthController{}
	assessmentController := controllers.NewAssessmentController(assessment, relapse, correlation, wave, onlineAI)
	journalController := controllers.NewJournalController(cognitive)
	lifeQualityController := controllers.NewLifeQualityController(lifeQuality)
	alertController := controllers.NewAlertController(alerting)
	taskController := controllers.NewTaskController(tasks)
	questionnaireController := controllers.NewQuestionnaireController(catalog)

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)
		public.POST("/auth/test-user", authController.CreateTestUser)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		// 量表评估
		private.POST("/assessments", assessmentController.SubmitAssessment)
		private.GET("/assessments", assessmentController.GetHistory)

		// 纵向分析
		private.GET("/analytics/trend", assessmentController.GetTrend)
		private.GET("/analytics/wave", assessmentController.GetWavePattern)
		private.GET("/analytics/relapse", assessmentController.PredictRelapse)
		private.GET("/analytics/sleep-mood", assessmentController.GetSleepMoodCorrelation)
		private.POST("/analytics/ai-enhance", assessmentController.EnhanceSentiment)

		// 生活质量
		private.POST("/life-quality", lifeQualityController.RecordMetrics)
		private.GET("/life-quality", lifeQualityController.GetDashboard)

		// 认知日记
		private.POST("/journal", journalController.CreateEntry)
		private.GET("/journal", journalController.ListEntries)
		private.GET("/journal/patterns", journalController.GetPatternTimeline)

		// 风险预警
		private.GET("/alerts/unread", alertController.ListUnread)
		private.GET("/alerts", alertController.ListAll)
		private.POST("/alerts/:id/read", alertController.MarkAsRead)

		// 行为激活任务
		private.GET("/tasks/suggest", taskController.SuggestTasks)
		private.POST("/tasks", taskController.AssignTask)
		private.POST("/tasks/:id/complete", taskController.CompleteTask)
		private.GET("/tasks/history", taskController.GetHistory)
		private.GET("/tasks/top", taskController.GetTopTasks)

		// 量表目录
		private.GET("/questionnaires", questionnaireController.ListQuestionnaires)
		private.GET("/questions", questionnaireController.GetQuestions)
	}

	// 内部路由组（仅限服务器内部调用）
	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware())
	{
		internal.POST("/questionnaires/seed", questionnaireController.SeedDefaults)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
