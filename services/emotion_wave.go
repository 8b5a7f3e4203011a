package services

import (
	"fmt"
	"time"

	"MindPulseGo/models"

	"gorm.io/gorm"
)

// EmotionWaveService 情绪波动检测，识别分数高峰与连续恶化
type EmotionWaveService struct {
	db       *gorm.DB
	alerting *AlertingService
}

func NewEmotionWaveService(db *gorm.DB, alerting *AlertingService) *EmotionWaveService {
	return &EmotionWaveService{db: db, alerting: alerting}
}

// WavePattern 分数序列的整体形态
type WavePattern struct {
	Pattern     string  `json:"pattern"`
	Description string  `json:"description"`
	Variance    float64 `json:"variance"`
}

// WaveDataPoint 波动曲线上的单个数据点
type WaveDataPoint struct {
	Timestamp         time.Time `json:"timestamp"`
	Score             int       `json:"score"`
	Level             string    `json:"level"`
	SentimentScore    *float64  `json:"sentimentScore,omitempty"`
	VoiceEmotionScore *float64  `json:"voiceEmotionScore,omitempty"`
}

// CurrentRisk 最新一次评估对应的风险快照
type CurrentRisk struct {
	Level       string    `json:"level"`
	Score       int       `json:"score"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// WaveOverview 情绪波动总览：描述性统计加形态与风险快照
type WaveOverview struct {
	Status      string          `json:"status"`
	DataPoints  []WaveDataPoint `json:"dataPoints,omitempty"`
	Mean        float64         `json:"mean"`
	StdDev      float64         `json:"stdDev"`
	Min         float64         `json:"min"`
	Max         float64         `json:"max"`
	Pattern     *WavePattern    `json:"pattern,omitempty"`
	CurrentRisk *CurrentRisk    `json:"currentRisk,omitempty"`
}

// AnalyzeEmotionWave 汇总用户全部评估的波动总览
func (s *EmotionWaveService) AnalyzeEmotionWave(userID string) (*WaveOverview, error) {
	var records []models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询历史记录失败: %w", err)
	}

	if len(records) == 0 {
		return &WaveOverview{Status: "NO_DATA"}, nil
	}

	points := make([]WaveDataPoint, len(records))
	scores := make([]float64, len(records))
	for i, r := range records {
		points[i] = WaveDataPoint{
			Timestamp:         r.CreatedAt,
			Score:             r.TotalScore,
			Level:             r.Level,
			SentimentScore:    r.SentimentScore,
			VoiceEmotionScore: r.VoiceEmotionScore,
		}
		scores[i] = float64(r.TotalScore)
	}

	mn, mx := minMax(scores)

	return &WaveOverview{
		Status:      "OK",
		DataPoints:  points,
		Mean:        round2(mean(scores)),
		StdDev:      round2(stdDev(scores)),
		Min:         mn,
		Max:         mx,
		Pattern:     classifyWavePattern(records),
		CurrentRisk: assessCurrentRisk(&records[len(records)-1]),
	}, nil
}

// assessCurrentRisk 按最新总分划分5档风险
func assessCurrentRisk(latest *models.AssessmentRecord) *CurrentRisk {
	score := latest.TotalScore

	var level, description string
	switch {
	case score >= 20:
		level, description = "SEVERE", "严重抑郁症状，需要立即专业干预"
	case score >= 15:
		level, description = "MODERATE_SEVERE", "中度偏重抑郁症状，建议寻求专业帮助"
	case score >= 10:
		level, description = "MODERATE", "中度抑郁症状，建议关注并考虑咨询"
	case score >= 5:
		level, description = "MILD", "轻度抑郁症状，建议持续监测"
	default:
		level, description = "MINIMAL", "症状最小或无症状"
	}

	return &CurrentRisk{
		Level:       level,
		Score:       score,
		Description: description,
		Timestamp:   latest.CreatedAt,
	}
}

// DetectSpike 检测最新评估是否构成情绪高峰。高峰定义为最新分数
// 超过全量历史（含最新一次）均值加SpikeSigma倍标准差，至少需要2条记录。
func (s *EmotionWaveService) DetectSpike(userID string, latest *models.AssessmentRecord) (*models.EmotionAlert, error) {
	var history []models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("查询历史记录失败: %w", err)
	}

	if len(history) < 2 {
		return nil, nil
	}

	scores := make([]float64, len(history))
	for i, r := range history {
		scores[i] = float64(r.TotalScore)
	}

	avg := mean(scores)
	sd := stdDev(scores)

	threshold := avg + analyticsConfig().SpikeSigma*sd
	current := float64(latest.TotalScore)
	if current <= threshold {
		return nil, nil
	}

	zScore := (current - avg) / sd
	severity := spikeSeverity(zScore)

	recordID := latest.ID
	return s.alerting.CreateAlert(userID, models.AlertEmotionSpike, severity,
		current, "assessment_submission",
		fmt.Sprintf("检测到情绪高峰：当前评分%d超过正常波动范围（平均值：%.1f）", latest.TotalScore, avg),
		spikeRecommendation(severity),
		&recordID)
}

// spikeSeverity 按z分数划分严重程度
func spikeSeverity(zScore float64) models.AlertSeverity {
	switch {
	case zScore > 3:
		return models.SeverityCritical
	case zScore > 2.5:
		return models.SeverityHigh
	case zScore > 2:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// spikeRecommendation 按严重程度给出对应建议
func spikeRecommendation(severity models.AlertSeverity) string {
	switch severity {
	case models.SeverityCritical:
		return "强烈建议立即寻求专业心理健康支持。如有自伤或自杀想法，请拨打心理危机热线：400-161-9995"
	case models.SeverityHigh:
		return "情绪出现明显波动，建议尽快联系心理咨询师或医生进行评估，同时可尝试深呼吸练习、冥想或轻度运动缓解"
	case models.SeverityMedium:
		return "建议进行放松练习，如正念冥想、渐进式肌肉放松或散步，保持规律作息和充足睡眠"
	default:
		return "继续保持自我关注，定期记录情绪状态，如感到不适可随时进行评估"
	}
}

// DetectWorseningTrend 最近3次评估分数严格递增且总升幅不低于5分时告警，
// 恶化趋势预警固定为高严重度
func (s *EmotionWaveService) DetectWorseningTrend(userID string) (*models.EmotionAlert, error) {
	var recent []models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(3).Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("查询历史记录失败: %w", err)
	}
	if len(recent) < 3 {
		return nil, nil
	}

	// 查询按时间倒序，判断时反转为时间正序
	oldest, middle, newest := recent[2], recent[1], recent[0]
	if !(oldest.TotalScore < middle.TotalScore && middle.TotalScore < newest.TotalScore) {
		return nil, nil
	}
	increase := newest.TotalScore - oldest.TotalScore
	if increase < 5 {
		return nil, nil
	}

	recordID := newest.ID
	return s.alerting.CreateAlert(userID, models.AlertWorseningTrend, models.SeverityHigh,
		float64(increase), "assessment_submission",
		fmt.Sprintf("最近3次评估分数持续上升，累计升高%d分", increase),
		"症状有恶化迹象，建议增加评估频率并考虑专业干预",
		&recordID)
}

// AnalyzeWavePattern 分析最近7次评估的波动形态
func (s *EmotionWaveService) AnalyzeWavePattern(userID string) (*WavePattern, error) {
	var records []models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询历史记录失败: %w", err)
	}
	return classifyWavePattern(records), nil
}

// classifyWavePattern 按最近7次分数划分形态，不足7次不做判断
func classifyWavePattern(records []models.AssessmentRecord) *WavePattern {
	if len(records) < 7 {
		return &WavePattern{Pattern: "insufficient_data", Description: "评估记录不足7次，无法分析波动形态"}
	}

	recent := records[len(records)-7:]
	scores := make([]float64, len(recent))
	for i, r := range recent {
		scores[i] = float64(r.TotalScore)
	}

	v := variance(scores)

	increasing, decreasing := true, true
	for i := 1; i < len(scores); i++ {
		if scores[i] <= scores[i-1] {
			increasing = false
		}
		if scores[i] >= scores[i-1] {
			decreasing = false
		}
	}

	switch {
	case increasing:
		return &WavePattern{Pattern: "steadily_worsening", Description: "分数持续上升，情绪状态逐步恶化", Variance: round2(v)}
	case decreasing:
		return &WavePattern{Pattern: "steadily_improving", Description: "分数持续下降，情绪状态逐步好转", Variance: round2(v)}
	case v > 20:
		return &WavePattern{Pattern: "high_fluctuation", Description: "分数波动剧烈，情绪状态不稳定", Variance: round2(v)}
	case v < 5:
		return &WavePattern{Pattern: "stable", Description: "分数波动平缓，情绪状态相对稳定", Variance: round2(v)}
	default:
		return &WavePattern{Pattern: "moderate_fluctuation", Description: "分数存在一定波动", Variance: round2(v)}
	}
}
