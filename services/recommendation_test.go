package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendationTypes(recs []Recommendation) []string {
	types := make([]string, len(recs))
	for i, r := range recs {
		types[i] = r.Type
	}
	return types
}

func TestGenerateRecommendationsCrisisRule(t *testing.T) {
	s := NewRecommendationService()
	answers := []int{0, 0, 0, 0, 0, 0, 0, 0, 1}

	recs := s.GenerateRecommendations(answers, 1, "")

	types := recommendationTypes(recs)
	require.Contains(t, types, "crisis")
	for _, r := range recs {
		if r.Type == "crisis" {
			assert.Equal(t, "⚠️ 危机干预资源", r.Title)
			assert.Equal(t, "critical", r.Priority)
			assert.Equal(t, "tel:400-161-9995", r.Link)
			assert.Equal(t, "紧急", r.PriorityText())
		}
	}
}

func TestGenerateRecommendationsSupportAlwaysLast(t *testing.T) {
	s := NewRecommendationService()

	recs := s.GenerateRecommendations(make([]int, PHQ9ItemCount), 0, "")

	require.NotEmpty(t, recs)
	assert.Equal(t, "support", recs[len(recs)-1].Type)
}

func TestGenerateRecommendationsSleepRule(t *testing.T) {
	s := NewRecommendationService()
	answers := []int{0, 0, 2, 0, 0, 0, 0, 0, 0}

	recs := s.GenerateRecommendations(answers, 2, "")

	assert.Contains(t, recommendationTypes(recs), "sleep")
}

func TestGenerateRecommendationsProfessionalHelpByTotal(t *testing.T) {
	s := NewRecommendationService()
	answers := []int{1, 1, 1, 1, 1, 1, 1, 1, 2}

	recs := s.GenerateRecommendations(answers, 10, "")

	assert.Contains(t, recommendationTypes(recs), "professional")
}

func TestGenerateRecommendationsNegativeSentimentAddsJournal(t *testing.T) {
	s := NewRecommendationService()
	answers := make([]int, PHQ9ItemCount)

	neutral := s.GenerateRecommendations(answers, 0, "neutral")
	negative := s.GenerateRecommendations(answers, 0, "negative")

	assert.NotContains(t, recommendationTypes(neutral), "journal")
	assert.Contains(t, recommendationTypes(negative), "journal")
}

func TestGenerateRecommendationsShortAnswersPadded(t *testing.T) {
	s := NewRecommendationService()

	// 答案不足9项时按0补齐，不越界
	recs := s.GenerateRecommendations([]int{2, 2}, 4, "")

	types := recommendationTypes(recs)
	assert.Contains(t, types, "activity")
	assert.NotContains(t, types, "crisis")
}
