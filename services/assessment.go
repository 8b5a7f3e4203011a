package services

import (
	"encoding/json"
	"fmt"
	"time"

	"MindPulseGo/config"
	"MindPulseGo/models"
	"MindPulseGo/utils"

	"gorm.io/gorm"
)

// AssessmentService 量表提交的编排入口。各检测器相互隔离，
// 任何一个检测器失败都不影响记录落库和其余检测器。
type AssessmentService struct {
	db          *gorm.DB
	locker      *utils.UserLocker
	fusion      *RiskFusionService
	anomaly     *AnomalyDetectionService
	sentiment   *SentimentAnalysisService
	scorer      FeatureScorer
	trend       *TrendAnalysisService
	wave        *EmotionWaveService
	recommender *RecommendationService
	catalog     *QuestionnaireService
}

func NewAssessmentService(db *gorm.DB, alerting *AlertingService) *AssessmentService {
	return &AssessmentService{
		db:          db,
		locker:      utils.NewUserLocker(),
		fusion:      NewRiskFusionService(),
		anomaly:     NewAnomalyDetectionService(),
		sentiment:   NewSentimentAnalysisService(),
		scorer:      NewAcousticScorer(),
		trend:       NewTrendAnalysisService(),
		wave:        NewEmotionWaveService(db, alerting),
		recommender: NewRecommendationService(),
		catalog:     NewQuestionnaireService(db),
	}
}

// SubmitAssessment 处理一次量表提交：分析、落库、触发预警。
// 同一用户的提交串行处理，保证纵向分析看到的历史是完整有序的。
func (s *AssessmentService) SubmitAssessment(userID string, req *models.SubmitAssessmentRequest) (*models.AssessmentResultResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(userID)
	defer unlock()

	code := req.QuestionnaireCode
	if code == "" {
		code = "PHQ-9"
	}
	maxScore := PHQ9MaxScore
	if q, err := s.catalog.GetByCode(code); err == nil {
		maxScore = q.MaxScore
	}

	// 负值归0后入库，检测器统一使用补齐到参考长度的向量，
	// 避免短量表的末位答案被当作安全条目
	answers := PadAnswers(req.Answers, len(req.Answers))
	padded := PadAnswers(answers, PHQ9ItemCount)

	record := models.AssessmentRecord{
		ID:                utils.GenerateID(),
		UserID:            userID,
		QuestionnaireCode: code,
		SentimentText:     req.SentimentText,
		CreatedAt:         time.Now(),
	}
	record.SetAnswers(answers)
	record.Level = ScoreToLevel(record.TotalScore)

	// 文本情感
	var sentimentResult *SentimentResult
	var sentimentScore *float64
	runDetector("sentiment", func() {
		if req.SentimentText != "" {
			sentimentResult = s.sentiment.AnalyzeSentiment(req.SentimentText)
			score := sentimentResult.Score
			sentimentScore = &score
			record.SentimentScore = &score
		}
	})

	// 声学评分
	var voiceScore *float64
	runDetector("acoustic", func() {
		if len(req.VoiceFeatures) > 0 {
			score := s.scorer.Score(req.VoiceFeatures)
			voiceScore = &score
			record.VoiceEmotionScore = &score
			if data, err := json.Marshal(req.VoiceFeatures); err == nil {
				record.VoiceFeaturesJSON = string(data)
			}
		}
	})

	if req.CameraData != nil {
		if data, err := json.Marshal(req.CameraData); err == nil {
			record.CameraDataJSON = string(data)
		}
	}

	// 风险融合，声学分必须在融合之后叠加
	runDetector("risk_fusion", func() {
		risk := s.fusion.CalculateRiskScore(padded, sentimentScore, maxScore)
		if voiceScore != nil {
			risk = s.fusion.BlendVoiceScore(risk, *voiceScore)
		}
		record.RiskScore = risk
	})

	// 作答质量异常
	var anomalies []string
	runDetector("anomaly", func() {
		result := s.anomaly.DetectAnomalies(padded)
		record.AnomalyDetected = result.IsAnomalous
		anomalies = result.Anomalies
	})

	cluster := s.fusion.ClusterUser(padded)

	// 记录必须落库，检测器失败不回滚
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("保存评估记录失败: %w", err)
	}

	// 落库后的预警检测，各自隔离
	runDetector("spike", func() {
		s.wave.DetectSpike(userID, &record)
	})
	runDetector("worsening", func() {
		s.wave.DetectWorseningTrend(userID)
	})

	// 短窗趋势
	var trendResp *models.TrendResponse
	runDetector("trend", func() {
		var history []models.AssessmentRecord
		if err := s.db.Where("user_id = ?", userID).
			Order("created_at ASC").Find(&history).Error; err != nil {
			return
		}
		analysis := s.trend.AnalyzeTrend(history, maxScore)
		trendResp = &models.TrendResponse{
			Trend:              analysis.Trend,
			TrendText:          analysis.TrendText(),
			Slope:              analysis.Slope,
			PredictedNextScore: analysis.PredictedNextScore,
		}
	})

	sentiment := ""
	if sentimentResult != nil {
		sentiment = sentimentResult.Sentiment
	}
	recommendations := s.recommender.GenerateRecommendations(padded, record.TotalScore, sentiment)

	resp := &models.AssessmentResultResponse{
		RecordID:        record.ID,
		TotalScore:      record.TotalScore,
		Level:           record.Level,
		RiskScore:       record.RiskScore,
		Cluster:         cluster.Cluster,
		Intervention:    cluster.Intervention,
		AnomalyDetected: record.AnomalyDetected,
		Anomalies:       anomalies,
		Trend:           trendResp,
		Recommendations: toRecommendationItems(recommendations),
		CreatedAt:       record.CreatedAt,
	}

	if sentimentResult != nil {
		resp.Sentiment = &models.SentimentResponse{
			Score:         sentimentResult.Score,
			Sentiment:     sentimentResult.Sentiment,
			NegativeWords: sentimentResult.NegativeWords,
			PositiveWords: sentimentResult.PositiveWords,
			Keywords:      sentimentResult.Keywords,
		}
	}
	if voiceScore != nil {
		resp.VoiceScore = &models.VoiceScoreResponse{
			DepressionScore: round3(*voiceScore),
			DepressionLevel: AcousticLevel(*voiceScore),
			FeatureCount:    len(req.VoiceFeatures),
		}
	}

	return resp, nil
}

// runDetector 隔离执行单个检测器，panic只记日志不外传
func runDetector(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if config.Logger != nil {
				config.Logger.Errorw("检测器执行失败", "detector", name, "panic", r)
			}
		}
	}()
	fn()
}

func toRecommendationItems(recs []Recommendation) []models.RecommendationItem {
	items := make([]models.RecommendationItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, models.RecommendationItem{
			Type:        r.Type,
			Title:       r.Title,
			Description: r.Description,
			Link:        r.Link,
			Priority:    r.Priority,
		})
	}
	return items
}

// GetHistory 按时间升序返回用户的评估历史
func (s *AssessmentService) GetHistory(userID string) ([]models.AssessmentRecord, error) {
	var records []models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询评估历史失败: %w", err)
	}
	return records, nil
}

// GetHistoryInRange 按时间升序返回时间窗内的评估记录
func (s *AssessmentService) GetHistoryInRange(userID string, start, end time.Time) ([]models.AssessmentRecord, error) {
	var records []models.AssessmentRecord
	err := s.db.Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询评估历史失败: %w", err)
	}
	return records, nil
}

// GetHighRiskRecords 返回风险分不低于阈值的记录，按时间降序
func (s *AssessmentService) GetHighRiskRecords(userID string, minRisk float64) ([]models.AssessmentRecord, error) {
	var records []models.AssessmentRecord
	err := s.db.Where("user_id = ? AND risk_score >= ?", userID, minRisk).
		Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询高风险记录失败: %w", err)
	}
	return records, nil
}

// GetTrend 独立的趋势查询接口
func (s *AssessmentService) GetTrend(userID string, maxScore int) (*models.TrendResponse, error) {
	records, err := s.GetHistory(userID)
	if err != nil {
		return nil, err
	}
	analysis := s.trend.AnalyzeTrend(records, maxScore)
	return &models.TrendResponse{
		Trend:              analysis.Trend,
		TrendText:          analysis.TrendText(),
		Slope:              analysis.Slope,
		PredictedNextScore: analysis.PredictedNextScore,
	}, nil
}
