package services

import (
	"fmt"
	"time"

	"MindPulseGo/models"

	"gorm.io/gorm"
)

// SleepMoodPair 一对配对成功的睡眠与情绪评估
type SleepMoodPair struct {
	Date       string  `json:"date"`
	SleepScore float64 `json:"sleepScore"`
	MoodScore  float64 `json:"moodScore"`
	SleepLevel string  `json:"sleepLevel"`
	MoodLevel  string  `json:"moodLevel"`
	MoodType   string  `json:"moodType"`
}

// SleepBreakdown 最新一次PSQI的维度拆解
type SleepBreakdown struct {
	Dimensions     map[string]int `json:"dimensions"`
	TotalScore     int            `json:"totalScore"`
	OverallQuality string         `json:"overallQuality"`
	ProblemAreas   []string       `json:"problemAreas"`
}

// SleepSchedule 推荐作息
type SleepSchedule struct {
	RecommendedBedtime  string   `json:"recommendedBedtime"`
	RecommendedWakeTime string   `json:"recommendedWakeTime"`
	RecommendedDuration string   `json:"recommendedSleepDuration"`
	Advice              []string `json:"advice"`
}

// ImprovementImpact 改善睡眠对情绪的预估影响
type ImprovementImpact struct {
	CurrentAvgSleepScore     float64 `json:"currentAvgSleepScore"`
	CurrentAvgMoodScore      float64 `json:"currentAvgMoodScore"`
	EstimatedSleepImprove    float64 `json:"estimatedSleepImprovement"`
	EstimatedMoodImprovement float64 `json:"estimatedMoodImprovement"`
	ImpactDescription        string  `json:"impactDescription"`
}

// SleepMoodCorrelation 睡眠与情绪相关性分析结果
type SleepMoodCorrelation struct {
	Status                 string             `json:"status"`
	Message                string             `json:"message,omitempty"`
	CorrelationCoefficient float64            `json:"correlationCoefficient"`
	CorrelationStrength    string             `json:"correlationStrength"`
	PairedDataCount        int                `json:"pairedDataCount"`
	PairedData             []SleepMoodPair    `json:"pairedData,omitempty"`
	SleepQualityBreakdown  *SleepBreakdown    `json:"sleepQualityBreakdown,omitempty"`
	OptimalSleepSchedule   *SleepSchedule     `json:"optimalSleepSchedule,omitempty"`
	Recommendations        []string           `json:"recommendations,omitempty"`
	ImprovementImpact      *ImprovementImpact `json:"improvementImpact,omitempty"`
}

// psqiDimensions PSQI前7题对应的维度名，按题目顺序
var psqiDimensions = []string{"入睡困难", "夜间觉醒", "早醒", "睡眠效率", "睡眠质量", "日间功能", "睡眠时长"}

// psqiProblemLabels 维度得分偏高时的问题描述
var psqiProblemLabels = []string{"入睡困难", "夜间觉醒", "早醒", "睡眠效率低", "睡眠质量差", "日间功能受损", "睡眠时长不足"}

// CorrelationService 睡眠与情绪的相关性分析
type CorrelationService struct {
	db *gorm.DB
}

func NewCorrelationService(db *gorm.DB) *CorrelationService {
	return &CorrelationService{db: db}
}

// AnalyzeSleepMoodCorrelation 配对PSQI与PHQ-9/GAD-7记录并计算Pearson相关系数
func (s *CorrelationService) AnalyzeSleepMoodCorrelation(userID string) (*SleepMoodCorrelation, error) {
	var allRecords []models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&allRecords).Error
	if err != nil {
		return nil, fmt.Errorf("查询评估记录失败: %w", err)
	}

	var sleepRecords, moodRecords []models.AssessmentRecord
	for _, r := range allRecords {
		switch r.QuestionnaireCode {
		case "PSQI":
			sleepRecords = append(sleepRecords, r)
		case "PHQ-9", "GAD-7":
			moodRecords = append(moodRecords, r)
		}
	}

	if len(sleepRecords) == 0 || len(moodRecords) == 0 {
		return &SleepMoodCorrelation{
			Status:  "INSUFFICIENT_DATA",
			Message: "需要PSQI和PHQ-9/GAD-7评估数据",
		}, nil
	}

	paired := pairSleepMoodData(sleepRecords, moodRecords, analyticsConfig().SleepMoodPairWindowHours)
	if len(paired) < 3 {
		return &SleepMoodCorrelation{
			Status:  "INSUFFICIENT_PAIRS",
			Message: "需要至少3对匹配的评估数据",
		}, nil
	}

	sleepScores := make([]float64, len(paired))
	moodScores := make([]float64, len(paired))
	for i, p := range paired {
		sleepScores[i] = p.SleepScore
		moodScores[i] = p.MoodScore
	}

	coefficient, err := pearsonCorrelation(sleepScores, moodScores)
	if err != nil {
		return &SleepMoodCorrelation{
			Status:  "INSUFFICIENT_PAIRS",
			Message: "配对数据方差不足，无法计算相关性",
		}, nil
	}

	return &SleepMoodCorrelation{
		Status:                 "OK",
		CorrelationCoefficient: round3(coefficient),
		CorrelationStrength:    InterpretCorrelation(coefficient),
		PairedDataCount:        len(paired),
		PairedData:             paired,
		SleepQualityBreakdown:  analyzeSleepDimensions(sleepRecords),
		OptimalSleepSchedule:   optimalSleepSchedule(),
		Recommendations:        sleepRecommendations(sleepScores, coefficient),
		ImprovementImpact:      estimateImprovementImpact(sleepScores, moodScores, coefficient),
	}, nil
}

// pairSleepMoodData 为每条睡眠记录寻找时间上最近的情绪记录，
// 间隔超过windowHours的不配对
func pairSleepMoodData(sleepRecords, moodRecords []models.AssessmentRecord, windowHours float64) []SleepMoodPair {
	var paired []SleepMoodPair
	for _, sleep := range sleepRecords {
		closest := findClosestRecord(sleep.CreatedAt, moodRecords, windowHours)
		if closest == nil {
			continue
		}
		paired = append(paired, SleepMoodPair{
			Date:       sleep.CreatedAt.Format("2006-01-02"),
			SleepScore: float64(sleep.TotalScore),
			MoodScore:  float64(closest.TotalScore),
			SleepLevel: sleep.Level,
			MoodLevel:  closest.Level,
			MoodType:   closest.QuestionnaireCode,
		})
	}
	return paired
}

func findClosestRecord(target time.Time, candidates []models.AssessmentRecord, windowHours float64) *models.AssessmentRecord {
	if len(candidates) == 0 {
		return nil
	}
	closest := &candidates[0]
	minDiff := absHours(target, candidates[0].CreatedAt)
	for i := range candidates {
		diff := absHours(target, candidates[i].CreatedAt)
		if diff < minDiff {
			minDiff = diff
			closest = &candidates[i]
		}
	}
	if minDiff > windowHours {
		return nil
	}
	return closest
}

func absHours(a, b time.Time) float64 {
	h := a.Sub(b).Hours()
	if h < 0 {
		return -h
	}
	return h
}

// InterpretCorrelation 将相关系数绝对值映射为强度描述
func InterpretCorrelation(coefficient float64) string {
	abs := coefficient
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 0.7:
		return "强相关"
	case abs >= 0.5:
		return "中等相关"
	case abs >= 0.3:
		return "弱相关"
	default:
		return "几乎无相关"
	}
}

// analyzeSleepDimensions 拆解最新一次PSQI的各维度得分并标出问题维度
func analyzeSleepDimensions(sleepRecords []models.AssessmentRecord) *SleepBreakdown {
	latest := sleepRecords[len(sleepRecords)-1]
	answers := latest.Answers()

	dimensions := make(map[string]int, len(psqiDimensions))
	var problems []string
	for i, name := range psqiDimensions {
		score := 0
		if i < len(answers) {
			score = answers[i]
		}
		dimensions[name] = score
		if score >= 2 {
			problems = append(problems, psqiProblemLabels[i])
		}
	}

	return &SleepBreakdown{
		Dimensions:     dimensions,
		TotalScore:     latest.TotalScore,
		OverallQuality: latest.Level,
		ProblemAreas:   problems,
	}
}

func optimalSleepSchedule() *SleepSchedule {
	return &SleepSchedule{
		RecommendedBedtime:  "22:00 - 23:00",
		RecommendedWakeTime: "06:00 - 07:00",
		RecommendedDuration: "7-9小时",
		Advice: []string{
			"保持固定的睡眠时间，包括周末",
			"睡前1-2小时避免使用电子设备",
			"创造舒适的睡眠环境：暗、静、凉",
			"避免睡前3小时摄入咖啡因",
			"建立放松的睡前程序，如阅读或冥想",
		},
	}
}

func sleepRecommendations(sleepScores []float64, coefficient float64) []string {
	var recommendations []string

	abs := coefficient
	if abs < 0 {
		abs = -abs
	}
	if abs >= 0.3 {
		recommendations = append(recommendations, "1. 睡眠质量与情绪状态显著相关，改善睡眠可能有助于改善情绪")
	}

	recommendations = append(recommendations,
		"2. 认知行为疗法-失眠（CBT-I）是改善睡眠的有效方法",
		"3. 建立规律的睡眠-觉醒节律，帮助调节生物钟",
		"4. 白天增加光照暴露，特别是早晨的自然光",
		"5. 适度的体育锻炼，但避免睡前3小时内剧烈运动",
		"6. 减少白天小睡，或限制在20-30分钟内",
		"7. 管理睡前的担忧和焦虑，可以使用'担忧时间'技术",
		"8. 如果睡眠问题持续，考虑咨询睡眠专家",
	)

	avgSleep := mean(sleepScores)
	if avgSleep >= 10 {
		recommendations = append(recommendations, "9. 您的睡眠质量较差，强烈建议寻求专业的睡眠评估和治疗")
	} else if avgSleep >= 5 {
		recommendations = append(recommendations, "9. 您的睡眠质量有改善空间，建议开始实施睡眠卫生措施")
	}

	return recommendations
}

// estimateImprovementImpact 粗估改善睡眠对情绪的影响幅度
func estimateImprovementImpact(sleepScores, moodScores []float64, coefficient float64) *ImprovementImpact {
	avgSleep := mean(sleepScores)
	avgMood := mean(moodScores)

	sleepImprovement := avgSleep * 0.5
	if sleepImprovement > 5 {
		sleepImprovement = 5
	}

	abs := coefficient
	if abs < 0 {
		abs = -abs
	}
	moodImprovement := abs * sleepImprovement * 0.8

	var impact string
	switch {
	case moodImprovement >= 3:
		impact = "改善睡眠可能对情绪有显著积极影响"
	case moodImprovement >= 1.5:
		impact = "改善睡眠可能对情绪有中等积极影响"
	default:
		impact = "改善睡眠可能对情绪有轻微积极影响"
	}

	return &ImprovementImpact{
		CurrentAvgSleepScore:     round1(avgSleep),
		CurrentAvgMoodScore:      round1(avgMood),
		EstimatedSleepImprove:    round1(sleepImprovement),
		EstimatedMoodImprovement: round1(moodImprovement),
		ImpactDescription:        impact,
	}
}
