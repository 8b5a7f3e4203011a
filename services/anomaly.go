package services

// AnomalyDetectionService 对单次答案向量做结构性检查。
// 四条规则彼此独立，全部求值，不短路。
type AnomalyDetectionService struct{}

func NewAnomalyDetectionService() *AnomalyDetectionService {
	return &AnomalyDetectionService{}
}

// AnomalyResult 异常检测结果
type AnomalyResult struct {
	IsAnomalous bool     `json:"isAnomalous"`
	Anomalies   []string `json:"anomalies"`
}

// DetectAnomalies 执行全部检查并累计描述
func (s *AnomalyDetectionService) DetectAnomalies(answers []int) AnomalyResult {
	result := AnomalyResult{Anomalies: []string{}}

	if s.allSame(answers) {
		result.Anomalies = append(result.Anomalies, "检测到所有问题的答案相同，这可能表示未认真作答")
		result.IsAnomalous = true
	}

	if s.strictPattern(answers) {
		result.Anomalies = append(result.Anomalies, "检测到答案存在规律性模式，建议重新评估")
		result.IsAnomalous = true
	}

	if s.contradictory(answers) {
		result.Anomalies = append(result.Anomalies, "检测到答案之间存在矛盾，建议仔细核对")
		result.IsAnomalous = true
	}

	if s.extremeResponse(answers) {
		result.Anomalies = append(result.Anomalies, "检测到极端响应模式，建议进行专业评估")
		result.IsAnomalous = true
	}

	return result
}

func (s *AnomalyDetectionService) allSame(answers []int) bool {
	if len(answers) == 0 {
		return false
	}
	first := answers[0]
	for _, a := range answers {
		if a != first {
			return false
		}
	}
	return true
}

// strictPattern 整个向量呈严格±1步进时判定为规律作答
func (s *AnomalyDetectionService) strictPattern(answers []int) bool {
	if len(answers) < 3 {
		return false
	}

	ascending := true
	descending := true
	for i := 1; i < len(answers); i++ {
		if answers[i] != answers[i-1]+1 {
			ascending = false
		}
		if answers[i] != answers[i-1]-1 {
			descending = false
		}
	}
	return ascending || descending
}

// contradictory 两类矛盾：否认核心症状却报告大量其他症状；
// 报告严重安全问题但其余答案几乎全零。
func (s *AnomalyDetectionService) contradictory(answers []int) bool {
	if len(answers) < PHQ9ItemCount {
		return false
	}

	if answers[0] == 0 && answers[1] == 0 && answers[2] == 0 {
		highCount := 0
		for i := 3; i < len(answers); i++ {
			if answers[i] >= 2 {
				highCount++
			}
		}
		if highCount >= 4 {
			return true
		}
	}

	last := len(answers) - 1
	if answers[last] >= 2 {
		zeroCount := 0
		for i := 0; i < last && i < 8; i++ {
			if answers[i] == 0 {
				zeroCount++
			}
		}
		if zeroCount >= 6 {
			return true
		}
	}

	return false
}

// extremeResponse 至少7题打满分（3分）
func (s *AnomalyDetectionService) extremeResponse(answers []int) bool {
	maxCount := 0
	for _, a := range answers {
		if a == 3 {
			maxCount++
		}
	}
	return maxCount >= 7
}
