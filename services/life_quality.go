package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"MindPulseGo/models"
	"MindPulseGo/utils"

	"gorm.io/gorm"
)

// DimensionTrends 最近两次打卡的逐维度变化
type DimensionTrends struct {
	Status       string              `json:"status,omitempty"`
	Changes      map[string]*float64 `json:"changes,omitempty"`
	Improving    []string            `json:"improving,omitempty"`
	Declining    []string            `json:"declining,omitempty"`
	Stable       []string            `json:"stable,omitempty"`
	OverallTrend float64             `json:"overallTrend"`
}

// InfluencingFactor 对情绪影响排名靠前的维度
type InfluencingFactor struct {
	Dimension    string  `json:"dimension"`
	DimensionKey string  `json:"dimensionKey"`
	Correlation  float64 `json:"correlation"`
	Impact       string  `json:"impact"`
}

// DimensionCorrelations 各维度与情绪分数的相关性
type DimensionCorrelations struct {
	Status                string              `json:"status,omitempty"`
	DimensionCorrelations map[string]float64  `json:"dimensionCorrelations,omitempty"`
	TopInfluencingFactors []InfluencingFactor `json:"topInfluencingFactors,omitempty"`
}

// Milestones 打卡里程碑
type Milestones struct {
	TotalRecords        int     `json:"totalRecords"`
	Consistency         string  `json:"consistency,omitempty"`
	HighestOverallScore float64 `json:"highestOverallScore"`
	Improvement         string  `json:"improvement,omitempty"`
}

// TimelinePoint 时间线上的一个打卡点
type TimelinePoint struct {
	Date         string              `json:"date"`
	OverallScore float64             `json:"overallScore"`
	Dimensions   map[string]*float64 `json:"dimensions"`
}

// LifeQualityDashboard 生活质量仪表盘
type LifeQualityDashboard struct {
	Status          string                 `json:"status"`
	Message         string                 `json:"message,omitempty"`
	CurrentScores   map[string]*float64    `json:"currentScores,omitempty"`
	OverallScore    float64                `json:"overallScore"`
	RecordedAt      string                 `json:"recordedAt,omitempty"`
	Trends          *DimensionTrends       `json:"trends,omitempty"`
	Correlations    *DimensionCorrelations `json:"correlations,omitempty"`
	KeyInsights     []string               `json:"keyInsights,omitempty"`
	Recommendations []string               `json:"recommendations,omitempty"`
	Milestones      *Milestones            `json:"milestones,omitempty"`
	Timeline        []TimelinePoint        `json:"timeline,omitempty"`
}

// LifeQualityService 生活质量打卡与仪表盘
type LifeQualityService struct {
	db *gorm.DB
}

func NewLifeQualityService(db *gorm.DB) *LifeQualityService {
	return &LifeQualityService{db: db}
}

// RecordMetrics 保存一次打卡。总分为已填维度的算术平均，
// 并关联用户最近的一次评估记录。
func (s *LifeQualityService) RecordMetrics(userID string, dimensionScores map[string]*float64, notes string) (*models.LifeQualityMetrics, error) {
	metrics := models.LifeQualityMetrics{
		ID:                  utils.GenerateID(),
		UserID:              userID,
		SleepQuality:        dimensionScores[models.DimSleepQuality],
		SocialInteraction:   dimensionScores[models.DimSocialInteraction],
		PhysicalActivity:    dimensionScores[models.DimPhysicalActivity],
		WorkProductivity:    dimensionScores[models.DimWorkProductivity],
		Satisfaction:        dimensionScores[models.DimSatisfaction],
		Relationships:       dimensionScores[models.DimRelationships],
		SelfCare:            dimensionScores[models.DimSelfCare],
		EnjoyableActivities: dimensionScores[models.DimEnjoyableActivities],
		Notes:               notes,
		RecordedAt:          time.Now(),
	}

	sum, n := 0.0, 0
	for _, v := range dimensionScores {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n > 0 {
		metrics.OverallScore = round1(sum / float64(n))
	}

	var latest models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").First(&latest).Error
	if err == nil {
		metrics.AssessmentRecordID = &latest.ID
	}

	if err := s.db.Create(&metrics).Error; err != nil {
		return nil, fmt.Errorf("保存生活质量记录失败: %w", err)
	}

	return &metrics, nil
}

// GetDashboard 组装生活质量仪表盘
func (s *LifeQualityService) GetDashboard(userID string) (*LifeQualityDashboard, error) {
	var allMetrics []models.LifeQualityMetrics
	err := s.db.Where("user_id = ?", userID).
		Order("recorded_at DESC").Find(&allMetrics).Error
	if err != nil {
		return nil, fmt.Errorf("查询生活质量记录失败: %w", err)
	}

	if len(allMetrics) == 0 {
		return &LifeQualityDashboard{Status: "NO_DATA", Message: "暂无生活质量数据"}, nil
	}

	latest := allMetrics[0]
	trends := analyzeDimensionTrends(allMetrics)
	correlations := s.analyzeDimensionCorrelations(userID, allMetrics)

	return &LifeQualityDashboard{
		Status:          "OK",
		CurrentScores:   latest.DimensionScores(),
		OverallScore:    latest.OverallScore,
		RecordedAt:      latest.RecordedAt.Format(time.RFC3339),
		Trends:          trends,
		Correlations:    correlations,
		KeyInsights:     generateKeyInsights(&latest, trends, correlations),
		Recommendations: generateLifeQualityRecommendations(&latest, correlations),
		Milestones:      trackMilestones(allMetrics),
		Timeline:        generateTimeline(allMetrics),
	}, nil
}

// analyzeDimensionTrends 对比最近两次打卡，变化超过±0.5算显著
func analyzeDimensionTrends(metrics []models.LifeQualityMetrics) *DimensionTrends {
	if len(metrics) < 2 {
		return &DimensionTrends{Status: "INSUFFICIENT_DATA"}
	}

	latest := metrics[0].DimensionScores()
	previous := metrics[1].DimensionScores()

	changes := make(map[string]*float64, len(models.LifeQualityDimensions))
	var improving, declining, stable []string

	for _, dim := range models.LifeQualityDimensions {
		cur, prev := latest[dim], previous[dim]
		if cur == nil || prev == nil {
			changes[dim] = nil
			continue
		}
		change := *cur - *prev
		changes[dim] = &change

		label := models.LifeQualityDimensionLabels[dim]
		switch {
		case change > 0.5:
			improving = append(improving, label)
		case change < -0.5:
			declining = append(declining, label)
		default:
			stable = append(stable, label)
		}
	}

	return &DimensionTrends{
		Changes:      changes,
		Improving:    improving,
		Declining:    declining,
		Stable:       stable,
		OverallTrend: round1(metrics[0].OverallScore - metrics[1].OverallScore),
	}
}

// analyzeDimensionCorrelations 逐维度计算与情绪分数的Pearson相关，
// 打卡与评估按时间最近原则配对，间隔超过配对窗口的丢弃
func (s *LifeQualityService) analyzeDimensionCorrelations(userID string, metrics []models.LifeQualityMetrics) *DimensionCorrelations {
	var assessments []models.AssessmentRecord
	s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&assessments)

	if len(metrics) < 3 || len(assessments) == 0 {
		return &DimensionCorrelations{Status: "INSUFFICIENT_DATA"}
	}

	window := analyticsConfig().LifeQualityPairWindowHours
	var moodScores []float64
	var paired []map[string]*float64
	for i := range metrics {
		closest := findClosestRecord(metrics[i].RecordedAt, assessments, window)
		if closest == nil {
			continue
		}
		moodScores = append(moodScores, float64(closest.TotalScore))
		paired = append(paired, metrics[i].DimensionScores())
	}

	if len(moodScores) < 3 {
		return &DimensionCorrelations{Status: "INSUFFICIENT_PAIRS"}
	}

	dimensionCorrelations := make(map[string]float64)
	for _, dim := range models.LifeQualityDimensions {
		var values []float64
		for _, scores := range paired {
			if v := scores[dim]; v != nil {
				values = append(values, *v)
			}
		}
		// 有缺失值的维度无法与情绪序列对齐，跳过
		if len(values) < 3 || len(values) != len(moodScores) {
			continue
		}
		corr, err := pearsonCorrelation(values, moodScores)
		if err != nil {
			continue
		}
		dimensionCorrelations[dim] = round3(corr)
	}

	keys := make([]string, 0, len(dimensionCorrelations))
	for k := range dimensionCorrelations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ai, aj := dimensionCorrelations[keys[i]], dimensionCorrelations[keys[j]]
		if ai < 0 {
			ai = -ai
		}
		if aj < 0 {
			aj = -aj
		}
		if ai != aj {
			return ai > aj
		}
		return keys[i] < keys[j]
	})

	var topFactors []InfluencingFactor
	for i, k := range keys {
		if i >= 3 {
			break
		}
		topFactors = append(topFactors, InfluencingFactor{
			Dimension:    models.LifeQualityDimensionLabels[k],
			DimensionKey: k,
			Correlation:  dimensionCorrelations[k],
			Impact:       InterpretCorrelation(dimensionCorrelations[k]),
		})
	}

	return &DimensionCorrelations{
		DimensionCorrelations: dimensionCorrelations,
		TopInfluencingFactors: topFactors,
	}
}

func generateKeyInsights(latest *models.LifeQualityMetrics, trends *DimensionTrends, correlations *DimensionCorrelations) []string {
	var insights []string

	scores := latest.DimensionScores()
	var strongAreas, weakAreas []string
	for _, dim := range models.LifeQualityDimensions {
		v := scores[dim]
		if v == nil {
			continue
		}
		label := models.LifeQualityDimensionLabels[dim]
		if *v >= 8 {
			strongAreas = append(strongAreas, label)
		} else if *v <= 4 {
			weakAreas = append(weakAreas, label)
		}
	}

	if len(strongAreas) > 0 {
		insights = append(insights, "您的优势领域："+strings.Join(strongAreas, "、"))
	}
	if len(weakAreas) > 0 {
		insights = append(insights, "需要改善的领域："+strings.Join(weakAreas, "、"))
	}
	if trends != nil && len(trends.Improving) > 0 {
		insights = append(insights, "正在改善的方面："+strings.Join(trends.Improving, "、"))
	}
	if trends != nil && len(trends.Declining) > 0 {
		insights = append(insights, "需要关注的下降趋势："+strings.Join(trends.Declining, "、"))
	}
	if correlations != nil && len(correlations.TopInfluencingFactors) > 0 {
		insights = append(insights, "对情绪影响最大的因素是："+correlations.TopInfluencingFactors[0].Dimension)
	}

	return insights
}

// dimensionAdvice 低分维度对应的改善建议
var dimensionAdvice = map[string]string{
	models.DimSleepQuality:        "改善睡眠质量：保持规律作息，创造舒适睡眠环境",
	models.DimSocialInteraction:   "增加社交互动：每周至少与朋友或家人联系一次",
	models.DimPhysicalActivity:    "提升身体活动：每天进行至少30分钟的运动",
	models.DimWorkProductivity:    "优化工作效率：使用番茄工作法，合理安排任务优先级",
	models.DimSatisfaction:        "提升满意度：每天记录三件感恩的事情",
	models.DimRelationships:       "改善人际关系：主动关心他人，练习积极倾听",
	models.DimSelfCare:            "加强自我照顾：每天为自己安排愉快的小时光",
	models.DimEnjoyableActivities: "增加愉快活动：每周尝试一项新的爱好或活动",
}

func generateLifeQualityRecommendations(latest *models.LifeQualityMetrics, correlations *DimensionCorrelations) []string {
	var recommendations []string

	scores := latest.DimensionScores()
	for _, dim := range models.LifeQualityDimensions {
		if v := scores[dim]; v != nil && *v <= 4 {
			recommendations = append(recommendations, dimensionAdvice[dim])
		}
	}

	if correlations != nil && len(correlations.TopInfluencingFactors) > 0 {
		top := correlations.TopInfluencingFactors[0]
		recommendations = append(recommendations,
			fmt.Sprintf("优先改善 %s，这可能对整体情绪有显著帮助", top.Dimension))
	}

	return recommendations
}

func trackMilestones(metrics []models.LifeQualityMetrics) *Milestones {
	m := &Milestones{TotalRecords: len(metrics)}

	if len(metrics) >= 10 {
		m.Consistency = "恭喜！您已经坚持记录10次以上"
	} else if len(metrics) >= 5 {
		m.Consistency = "很好！继续保持记录习惯"
	}

	for _, record := range metrics {
		if record.OverallScore > m.HighestOverallScore {
			m.HighestOverallScore = record.OverallScore
		}
	}

	if len(metrics) >= 2 {
		// 查询按时间倒序，末尾是最早一次
		improvement := metrics[0].OverallScore - metrics[len(metrics)-1].OverallScore
		if improvement > 2 {
			m.Improvement = "总体生活质量显著提升！"
		} else if improvement > 0 {
			m.Improvement = "生活质量稳步改善中"
		}
	}

	return m
}

func generateTimeline(metrics []models.LifeQualityMetrics) []TimelinePoint {
	timeline := make([]TimelinePoint, 0, len(metrics))
	// 倒序转正序
	for i := len(metrics) - 1; i >= 0; i-- {
		timeline = append(timeline, TimelinePoint{
			Date:         metrics[i].RecordedAt.Format("2006-01-02"),
			OverallScore: metrics[i].OverallScore,
			Dimensions:   metrics[i].DimensionScores(),
		})
	}
	return timeline
}
