package services

import (
	"context"
	"strings"
	"time"

	"MindPulseGo/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// AIEnhancementResult 在线AI增强分析的结果。失败时Successful为false，
// 调用方退回本地词典分析。
type AIEnhancementResult struct {
	EnhancedAnalysis string           `json:"enhancedAnalysis"`
	OnlineAnalysis   bool             `json:"onlineAnalysis"`
	Provider         string           `json:"provider"`
	Successful       bool             `json:"successful"`
	ErrorMessage     string           `json:"errorMessage,omitempty"`
	LocalResult      *SentimentResult `json:"localResult,omitempty"`
}

// OnlineAIService 可选的在线AI情感增强。未配置或调用失败时
// 降级到本地词典分析，不影响主流程。
type OnlineAIService struct {
	client    *DeepseekClient
	sentiment *SentimentAnalysisService
	enabled   bool
}

func NewOnlineAIService(client *DeepseekClient, sentiment *SentimentAnalysisService, enabled bool) *OnlineAIService {
	return &OnlineAIService{
		client:    client,
		sentiment: sentiment,
		enabled:   enabled,
	}
}

// EnhanceSentimentAnalysis 在线分析文本的心理健康指标
func (s *OnlineAIService) EnhanceSentimentAnalysis(ctx context.Context, text string) *AIEnhancementResult {
	if !s.enabled || s.client == nil || strings.TrimSpace(text) == "" {
		return s.fallbackAnalysis(text)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart("你是一个专业的心理健康评估助手。请分析用户的文本，识别关键的心理健康指标。")},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart("请分析这段文本的情感状态和心理健康相关信息：" + text)},
		},
	}

	resp, err := s.client.DsChat.GenerateContent(ctx, messages, llms.WithTemperature(0.7))
	if err != nil || len(resp.Choices) == 0 {
		if config.Logger != nil {
			config.Logger.Warnw("在线AI调用失败，降级到本地分析", "error", err)
		}
		return s.fallbackAnalysis(text)
	}

	return &AIEnhancementResult{
		EnhancedAnalysis: resp.Choices[0].Content,
		OnlineAnalysis:   true,
		Provider:         "DeepSeek",
		Successful:       true,
	}
}

// fallbackAnalysis 本地词典分析兜底
func (s *OnlineAIService) fallbackAnalysis(text string) *AIEnhancementResult {
	local := s.sentiment.AnalyzeSentiment(text)
	return &AIEnhancementResult{
		EnhancedAnalysis: "本地分析：情感极性为" + local.SentimentText(),
		OnlineAnalysis:   false,
		Provider:         "local",
		Successful:       true,
		LocalResult:      local,
	}
}
