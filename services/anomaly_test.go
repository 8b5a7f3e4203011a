package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAnomaliesAllSame(t *testing.T) {
	s := NewAnomalyDetectionService()

	result := s.DetectAnomalies([]int{2, 2, 2, 2, 2, 2, 2, 2, 2})

	assert.True(t, result.IsAnomalous)
	assert.Contains(t, result.Anomalies, "检测到所有问题的答案相同，这可能表示未认真作答")
}

func TestDetectAnomaliesStrictAscending(t *testing.T) {
	s := NewAnomalyDetectionService()

	result := s.DetectAnomalies([]int{0, 1, 2, 3})

	assert.True(t, result.IsAnomalous)
	assert.Contains(t, result.Anomalies, "检测到答案存在规律性模式，建议重新评估")
}

func TestDetectAnomaliesStrictDescending(t *testing.T) {
	s := NewAnomalyDetectionService()

	result := s.DetectAnomalies([]int{3, 2, 1, 0})

	assert.True(t, result.IsAnomalous)
	assert.Contains(t, result.Anomalies, "检测到答案存在规律性模式，建议重新评估")
}

func TestDetectAnomaliesContradictoryCoreDenied(t *testing.T) {
	s := NewAnomalyDetectionService()

	// 否认核心症状却报告4项以上其他症状
	result := s.DetectAnomalies([]int{0, 0, 0, 2, 2, 2, 2, 0, 0})

	assert.True(t, result.IsAnomalous)
	assert.Contains(t, result.Anomalies, "检测到答案之间存在矛盾，建议仔细核对")
}

func TestDetectAnomaliesContradictorySafetyOnly(t *testing.T) {
	s := NewAnomalyDetectionService()

	// 安全题严重但其余几乎全零
	result := s.DetectAnomalies([]int{0, 0, 0, 0, 0, 0, 0, 0, 2})

	assert.True(t, result.IsAnomalous)
	assert.Contains(t, result.Anomalies, "检测到答案之间存在矛盾，建议仔细核对")
}

func TestDetectAnomaliesExtremeResponse(t *testing.T) {
	s := NewAnomalyDetectionService()

	result := s.DetectAnomalies([]int{3, 3, 3, 3, 3, 3, 3, 0, 1})

	assert.True(t, result.IsAnomalous)
	assert.Contains(t, result.Anomalies, "检测到极端响应模式，建议进行专业评估")
}

func TestDetectAnomaliesNormalAnswers(t *testing.T) {
	s := NewAnomalyDetectionService()

	result := s.DetectAnomalies([]int{1, 0, 2, 1, 0, 1, 2, 0, 0})

	assert.False(t, result.IsAnomalous)
	assert.Empty(t, result.Anomalies)
}

func TestDetectAnomaliesRulesAccumulate(t *testing.T) {
	s := NewAnomalyDetectionService()

	// 全3同时触发答案相同与极端响应
	result := s.DetectAnomalies([]int{3, 3, 3, 3, 3, 3, 3, 3, 3})

	assert.True(t, result.IsAnomalous)
	assert.Len(t, result.Anomalies, 2)
}

func TestDetectAnomaliesEmptyAnswers(t *testing.T) {
	s := NewAnomalyDetectionService()

	result := s.DetectAnomalies(nil)

	assert.False(t, result.IsAnomalous)
}
