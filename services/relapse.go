package services

import (
	"fmt"
	"strings"
	"time"

	"MindPulseGo/models"

	"gorm.io/gorm"
)

// 复发风险等级
const (
	RelapseRiskCritical     = "CRITICAL"
	RelapseRiskHigh         = "HIGH"
	RelapseRiskMedium       = "MEDIUM"
	RelapseRiskLow          = "LOW"
	RelapseInsufficientData = "INSUFFICIENT_DATA"
)

// ScoreProjection 未来某天的分数预测
type ScoreProjection struct {
	DaysAhead      int       `json:"daysAhead"`
	Date           time.Time `json:"date"`
	PredictedScore float64   `json:"predictedScore"`
	PredictedLevel string    `json:"predictedLevel"`
}

// RelapsePrediction 复发预测结果
type RelapsePrediction struct {
	RiskLevel            string            `json:"riskLevel"`
	RiskScore            int               `json:"riskScore"`
	Message              string            `json:"message,omitempty"`
	TrendSlope           float64           `json:"trendSlope"`
	RSquared             float64           `json:"rSquared"`
	CurrentScore         int               `json:"currentScore"`
	Projections          []ScoreProjection `json:"projections"`
	RiskFactors          []string          `json:"riskFactors"`
	PreventionStrategies []string          `json:"preventionStrategies"`
}

// RelapsePredictionService 基于自然日时间轴的线性回归预测未来分数走势。
// 与趋势分析的等距斜率不同，这里的自变量是距首次评估的天数，
// 因此评估间隔不均匀时两者会给出不同的斜率。
type RelapsePredictionService struct {
	db       *gorm.DB
	alerting *AlertingService
}

func NewRelapsePredictionService(db *gorm.DB, alerting *AlertingService) *RelapsePredictionService {
	return &RelapsePredictionService{db: db, alerting: alerting}
}

// PredictRelapseRisk 预测未来forecastDays天内的复发风险
func (s *RelapsePredictionService) PredictRelapseRisk(userID string, forecastDays int) (*RelapsePrediction, error) {
	var records []models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询评估记录失败: %w", err)
	}

	if len(records) < 3 {
		return &RelapsePrediction{
			RiskLevel: RelapseInsufficientData,
			Message:   "需要至少3次评估记录才能进行预测",
		}, nil
	}

	firstTime := records[0].CreatedAt
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		xs[i] = r.CreatedAt.Sub(firstTime).Hours() / 24.0
		ys[i] = float64(r.TotalScore)
	}

	slope, intercept, rSquared, err := linearRegression(xs, ys)
	if err != nil {
		return &RelapsePrediction{
			RiskLevel: RelapseInsufficientData,
			Message:   "评估记录时间分布不足，无法拟合趋势",
		}, nil
	}

	lastDay := xs[len(xs)-1]
	lastTime := records[len(records)-1].CreatedAt

	var projections []ScoreProjection
	for ahead := 7; ahead <= forecastDays; ahead += 7 {
		predicted := slope*(lastDay+float64(ahead)) + intercept
		predicted = clamp(predicted, 0, float64(PHQ9MaxScore))
		projections = append(projections, ScoreProjection{
			DaysAhead:      ahead,
			Date:           lastTime.AddDate(0, 0, ahead),
			PredictedScore: round1(predicted),
			PredictedLevel: ScoreToLevel(int(predicted + 0.5)),
		})
	}

	currentScore := records[len(records)-1].TotalScore
	riskScore := s.calculateRiskScore(currentScore, slope, projections, ys)
	riskLevel := riskLevelForScore(riskScore)
	riskFactors := s.identifyRiskFactors(records)
	strategies := preventionStrategies(riskLevel, riskFactors)

	prediction := &RelapsePrediction{
		RiskLevel:            riskLevel,
		RiskScore:            riskScore,
		TrendSlope:           round3(slope),
		RSquared:             round3(rSquared),
		CurrentScore:         currentScore,
		Projections:          projections,
		RiskFactors:          riskFactors,
		PreventionStrategies: strategies,
	}

	if s.alerting != nil && (riskLevel == RelapseRiskHigh || riskLevel == RelapseRiskCritical) {
		severity := models.SeverityHigh
		if riskLevel == RelapseRiskCritical {
			severity = models.SeverityCritical
		}
		recordID := records[len(records)-1].ID
		s.alerting.CreateAlert(userID, models.AlertRelapseRisk, severity,
			float64(riskScore), "relapse_prediction",
			fmt.Sprintf("复发风险评估为%s，综合风险分%d", riskLevel, riskScore),
			strings.Join(strategies, "\n"), &recordID)
	}

	return prediction, nil
}

// calculateRiskScore 综合风险评分，0到100
func (s *RelapsePredictionService) calculateRiskScore(currentScore int, slope float64,
	projections []ScoreProjection, scores []float64) int {

	risk := 0

	switch {
	case currentScore >= 15:
		risk += 40
	case currentScore >= 10:
		risk += 25
	case currentScore >= 5:
		risk += 10
	}

	switch {
	case slope > 0.5:
		risk += 30
	case slope > 0.2:
		risk += 15
	}

	if len(projections) > 0 {
		sum := 0.0
		for _, p := range projections {
			sum += p.PredictedScore
		}
		avg := sum / float64(len(projections))
		switch {
		case avg >= 15:
			risk += 20
		case avg >= 10:
			risk += 10
		}
	}

	maxDiff := 0.0
	for i := 1; i < len(scores); i++ {
		diff := scores[i] - scores[i-1]
		if diff < 0 {
			diff = -diff
		}
		if diff > maxDiff {
			maxDiff = diff
		}
	}
	if maxDiff > 10 {
		risk += 10
	}

	if risk > 100 {
		risk = 100
	}
	return risk
}

func riskLevelForScore(score int) string {
	switch {
	case score >= 70:
		return RelapseRiskCritical
	case score >= 50:
		return RelapseRiskHigh
	case score >= 30:
		return RelapseRiskMedium
	default:
		return RelapseRiskLow
	}
}

// identifyRiskFactors 在最近5次记录内识别个体化风险因素
func (s *RelapsePredictionService) identifyRiskFactors(records []models.AssessmentRecord) []string {
	factors := []string{}

	recent := records
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	sum := 0
	for _, r := range recent {
		sum += r.TotalScore
	}
	if float64(sum)/float64(len(recent)) >= 10 {
		factors = append(factors, "持续的中高抑郁症状")
	}

	for i := 1; i < len(recent); i++ {
		if recent[i].TotalScore > recent[i-1].TotalScore {
			factors = append(factors, "症状呈恶化趋势")
			break
		}
	}

	month := int(time.Now().Month())
	if month >= 10 || month <= 2 {
		factors = append(factors, "季节性因素（秋冬季节）")
	}

	sleepIssues := 0
	for _, r := range recent {
		if r.QuestionnaireCode == "PSQI" && r.TotalScore > 5 {
			sleepIssues++
		}
	}
	if sleepIssues >= 2 {
		factors = append(factors, "睡眠问题")
	}

	return factors
}

// preventionStrategies 按风险等级与风险因素生成预防策略，顺序固定
func preventionStrategies(riskLevel string, riskFactors []string) []string {
	strategies := []string{
		"保持规律的作息时间和睡眠习惯",
		"坚持每周至少3次、每次30分钟的有氧运动",
		"维持社交联系，避免自我孤立",
	}

	if riskLevel == RelapseRiskHigh || riskLevel == RelapseRiskCritical {
		strategies = append([]string{
			"立即预约心理咨询师或精神科医生",
			"增加评估频率至每周2到3次",
		}, strategies...)
	}

	for _, f := range riskFactors {
		switch f {
		case "睡眠问题":
			strategies = append(strategies, "练习睡眠卫生，睡前1小时避免使用电子设备")
		case "季节性因素（秋冬季节）":
			strategies = append(strategies, "增加日照时间，考虑光照疗法")
		}
	}

	strategies = append(strategies, "记录每日情绪日记，及时觉察情绪变化")
	return strategies
}
