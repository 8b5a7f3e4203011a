package services

// Recommendation 一条干预建议
type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Priority    string `json:"priority"`
}

// PriorityText 优先级中文描述
func (r Recommendation) PriorityText() string {
	switch r.Priority {
	case "critical":
		return "紧急"
	case "high":
		return "高"
	case "medium":
		return "中"
	case "low":
		return "低"
	default:
		return "一般"
	}
}

// RecommendationService 按答题项逐条触发的干预建议生成器
type RecommendationService struct{}

func NewRecommendationService() *RecommendationService {
	return &RecommendationService{}
}

// GenerateRecommendations 根据答案、总分和情感极性生成建议列表。
// 建议顺序固定，末尾始终附带社会支持建议。
func (s *RecommendationService) GenerateRecommendations(answers []int, totalScore int, sentiment string) []Recommendation {
	answers = PadAnswers(answers, PHQ9ItemCount)
	var recommendations []Recommendation

	if answers[2] >= 2 || answers[3] >= 2 {
		recommendations = append(recommendations, Recommendation{
			Type:        "sleep",
			Title:       "睡眠改善计划",
			Description: "建立规律的睡眠时间表，睡前1小时避免屏幕，尝试渐进性肌肉放松练习",
			Link:        "https://example.com/sleep-guide",
			Priority:    "high",
		})
	}

	if answers[0] >= 2 || answers[1] >= 2 {
		recommendations = append(recommendations, Recommendation{
			Type:        "activity",
			Title:       "行为激活疗法",
			Description: "每天安排至少一项曾经喜欢的活动，即使现在不想做，也要尝试开始行动",
			Link:        "https://example.com/behavioral-activation",
			Priority:    "high",
		})
	}

	if answers[6] >= 2 {
		recommendations = append(recommendations, Recommendation{
			Type:        "mindfulness",
			Title:       "正念冥想练习",
			Description: "每天进行10-15分钟的正念冥想，帮助改善注意力和减少焦虑",
			Link:        "https://example.com/mindfulness",
			Priority:    "medium",
		})
	}

	if answers[5] >= 2 {
		recommendations = append(recommendations, Recommendation{
			Type:        "cbt",
			Title:       "认知行为疗法（CBT）资源",
			Description: "学习识别和挑战负面思维模式，推荐使用CBT自助练习本",
			Link:        "https://example.com/cbt-resources",
			Priority:    "high",
		})
	}

	if totalScore >= 10 {
		recommendations = append(recommendations, Recommendation{
			Type:        "professional",
			Title:       "寻求专业帮助",
			Description: "您的症状需要专业评估，建议预约心理咨询师或精神科医生",
			Link:        "https://example.com/find-therapist",
			Priority:    "critical",
		})
	}

	if answers[4] >= 2 {
		recommendations = append(recommendations, Recommendation{
			Type:        "nutrition",
			Title:       "营养与饮食建议",
			Description: "保持规律饮食，增加富含Omega-3、维生素D和B族维生素的食物",
			Link:        "https://example.com/nutrition-guide",
			Priority:    "medium",
		})
	}

	if answers[7] >= 1 || answers[8] >= 1 {
		recommendations = append(recommendations, Recommendation{
			Type:        "exercise",
			Title:       "运动疗法",
			Description: "每周进行至少150分钟的中等强度运动，如快走、慢跑、游泳等",
			Link:        "https://example.com/exercise-plan",
			Priority:    "high",
		})
	}

	if sentiment == "negative" {
		recommendations = append(recommendations, Recommendation{
			Type:        "journal",
			Title:       "情绪日记",
			Description: "每天写下您的想法和感受，这有助于识别触发因素和情绪模式",
			Link:        "https://example.com/mood-journal",
			Priority:    "medium",
		})
	}

	if answers[8] > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:        "crisis",
			Title:       "⚠️ 危机干预资源",
			Description: "如果您有自伤想法，请立即联系：全国24小时心理援助热线：400-161-9995",
			Link:        "tel:400-161-9995",
			Priority:    "critical",
		})
	}

	recommendations = append(recommendations, Recommendation{
		Type:        "support",
		Title:       "社会支持网络",
		Description: "与信任的朋友、家人保持联系，考虑加入抑郁症支持小组",
		Link:        "https://example.com/support-groups",
		Priority:    "medium",
	})

	return recommendations
}
