package services

import (
	"MindPulseGo/models"
)

// TrendAnalysisService 对用户评分历史做短窗趋势分析。
// 斜率以记录序号为自变量计算，与复发预测的按天回归是两套算法，
// 刻意不合并（合并会改变预测输出）。
type TrendAnalysisService struct{}

func NewTrendAnalysisService() *TrendAnalysisService {
	return &TrendAnalysisService{}
}

// TrendAnalysis 趋势分析结果
type TrendAnalysis struct {
	Trend              string   `json:"trend"`
	Slope              float64  `json:"slope"`
	PredictedNextScore *float64 `json:"predictedNextScore"`
}

// TrendText 趋势的中文名
func (t TrendAnalysis) TrendText() string {
	switch t.Trend {
	case "improving":
		return "改善中"
	case "worsening":
		return "恶化中"
	case "stable":
		return "稳定"
	default:
		return "数据不足"
	}
}

// AnalyzeTrend 历史记录须按时间升序。少于2条返回insufficient_data；
// 斜率及下次评分预测需要至少3条。预测值被钳制到量表的[0,max]区间。
func (s *TrendAnalysisService) AnalyzeTrend(records []models.AssessmentRecord, maxScore int) TrendAnalysis {
	if len(records) < 2 {
		return TrendAnalysis{Trend: "insufficient_data"}
	}
	if maxScore <= 0 {
		maxScore = PHQ9MaxScore
	}

	scores := make([]float64, len(records))
	for i, r := range records {
		scores[i] = float64(r.TotalScore)
	}

	trend := "stable"
	slope := 0.0
	var prediction *float64

	if len(scores) >= 3 {
		slope = linearSlope(scores)
		switch {
		case slope > 1.0:
			trend = "worsening"
		case slope < -1.0:
			trend = "improving"
		default:
			trend = "stable"
		}

		p := clamp(scores[len(scores)-1]+slope, 0, float64(maxScore))
		prediction = &p
	}

	return TrendAnalysis{Trend: trend, Slope: slope, PredictedNextScore: prediction}
}
