package services

import (
	"math"
)

// PHQ9ItemCount 参考9项量表的题目数
const PHQ9ItemCount = 9

// PHQ9MaxScore 参考9项量表的满分
const PHQ9MaxScore = 27

// RiskFusionService 把问卷答案、文本情感分与声学情绪分融合成一个风险评分
type RiskFusionService struct{}

func NewRiskFusionService() *RiskFusionService {
	return &RiskFusionService{}
}

// PadAnswers 把答案向量补齐到指定长度，缺失项按0处理，负值归0
func PadAnswers(answers []int, length int) []int {
	padded := make([]int, length)
	for i := 0; i < length && i < len(answers); i++ {
		if answers[i] > 0 {
			padded[i] = answers[i]
		}
	}
	return padded
}

// CalculateRiskScore 计算融合风险评分，结果始终在[0,1]。
// 权重：基础分0.5，模式分0.25，情感分0.15，一致性分0.1。
// maxScore 为该量表的理论满分，传0时按参考9项量表的27分处理。
func (s *RiskFusionService) CalculateRiskScore(answers []int, sentimentScore *float64, maxScore int) float64 {
	if maxScore <= 0 {
		maxScore = PHQ9MaxScore
	}

	base := s.baseRisk(answers, maxScore)
	pattern := s.patternRisk(answers)

	sentimentRisk := 0.0
	if sentimentScore != nil && *sentimentScore < -0.3 {
		sentimentRisk = math.Abs(*sentimentScore) * 0.3
	}

	consistency := s.consistencyRisk(answers)

	total := base*0.5 + pattern*0.25 + sentimentRisk*0.15 + consistency*0.1
	return clamp(total, 0, 1)
}

// BlendVoiceScore 在融合评分之后叠加声学情绪分。必须先融合再叠加，
// 顺序不能颠倒。
func (s *RiskFusionService) BlendVoiceScore(riskScore, voiceEmotionScore float64) float64 {
	return clamp(riskScore*0.7+math.Abs(voiceEmotionScore)*0.3, 0, 1)
}

func (s *RiskFusionService) baseRisk(answers []int, maxScore int) float64 {
	total := 0
	for _, a := range answers {
		total += a
	}
	return math.Min(1.0, float64(total)/float64(maxScore))
}

// patternRisk 累计高危答题模式，上限1.0
func (s *RiskFusionService) patternRisk(answers []int) float64 {
	if len(answers) == 0 {
		return 0
	}
	risk := 0.0

	// 最后一题为自伤/安全题
	last := len(answers) - 1
	if answers[last] > 0 {
		risk += 0.4
	}

	highCount := 0
	for i := 0; i < PHQ9ItemCount && i < len(answers); i++ {
		if answers[i] >= 2 {
			highCount++
		}
	}
	if highCount >= 5 {
		risk += 0.3
	}

	if len(answers) >= 2 && answers[0] >= 2 && answers[1] >= 2 {
		risk += 0.2
	}

	if len(answers) >= 6 && answers[5] >= 2 && answers[last] > 0 {
		risk += 0.3
	}

	return math.Min(1.0, risk)
}

// consistencyRisk 方差过小且均值偏高说明答案过于整齐划一
func (s *RiskFusionService) consistencyRisk(answers []int) float64 {
	values := make([]float64, len(answers))
	for i, a := range answers {
		values[i] = float64(a)
	}

	cfg := analyticsConfig()
	if variance(values) < cfg.ConsistencyVarianceMax && mean(values) > cfg.ConsistencyMeanMin {
		return 0.2
	}
	return 0
}

// ClusterResult 人群分层结果
type ClusterResult struct {
	Cluster      string `json:"cluster"`
	Intervention string `json:"intervention"`
}

// ClusterText 分层的中文名
func (c ClusterResult) ClusterText() string {
	switch c.Cluster {
	case "low_risk":
		return "低风险群体"
	case "mild_risk":
		return "轻度风险群体"
	case "moderate_risk":
		return "中度风险群体"
	case "high_risk":
		return "高风险群体"
	case "severe_risk":
		return "严重风险群体"
	default:
		return "未分类"
	}
}

// ClusterUser 按总分把用户映射到固定的5个风险分层，并给出干预建议。
// 安全题非零时无条件在建议前加危机资源提示。
func (s *RiskFusionService) ClusterUser(answers []int) ClusterResult {
	total := 0
	for _, a := range answers {
		total += a
	}

	var cluster, intervention string
	switch {
	case total <= 4:
		cluster = "low_risk"
		intervention = "继续保持健康的生活方式，定期进行自我评估"
	case total <= 9:
		cluster = "mild_risk"
		intervention = "建议学习情绪管理技巧，增加社交活动，保持规律作息"
	case total <= 14:
		cluster = "moderate_risk"
		intervention = "建议咨询心理健康专业人士，考虑心理咨询或认知行为疗法"
	case total <= 19:
		cluster = "high_risk"
		intervention = "强烈建议寻求专业心理治疗，可能需要药物治疗配合心理治疗"
	default:
		cluster = "severe_risk"
		intervention = "需要立即寻求专业医疗帮助，可能需要住院治疗或密集的门诊治疗"
	}

	if len(answers) > 0 && answers[len(answers)-1] > 0 {
		intervention = "⚠️ 检测到自伤风险，请立即联系心理危机热线或前往最近的急诊室。" + intervention
	}

	return ClusterResult{Cluster: cluster, Intervention: intervention}
}

// ScoreToLevel 按总分映射5级严重程度标签
func ScoreToLevel(score int) string {
	switch {
	case score >= 20:
		return "严重"
	case score >= 15:
		return "中度偏重"
	case score >= 10:
		return "中度"
	case score >= 5:
		return "轻度"
	default:
		return "最小"
	}
}
