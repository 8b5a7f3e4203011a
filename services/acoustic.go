package services

import "strings"

// eGeMAPS特征名
const (
	featF0Std        = "F0semitoneFrom27.5Hz_sma3nz_stddevNorm"
	featF0Mean       = "F0semitoneFrom27.5Hz_sma3nz_amean"
	featLoudnessMean = "loudness_sma3_amean"
	featLoudnessStd  = "loudness_sma3_stddevNorm"
	featJitter       = "jitterLocal_sma3nz_amean"
	featShimmer      = "shimmerLocaldB_sma3nz_amean"
	featHNR          = "HNRdBACF_sma3nz_amean"
	featEnergyMean   = "pcm_RMSenergy_sma3_amean"
)

// FeatureScorer 声学特征到抑郁评分的映射。当前用加权启发式实现，
// 接口稳定，之后可以换成训练好的模型。
type FeatureScorer interface {
	Score(features map[string]float64) float64
}

// AcousticScorer 基于eGeMAPS声学特征的加权抑郁评分。
// 权重参考语音抑郁检测研究中各指标的相对贡献。
type AcousticScorer struct{}

func NewAcousticScorer() *AcousticScorer {
	return &AcousticScorer{}
}

// Score 计算声学抑郁评分，范围[0,1]。特征缺失时对应分项不计入，
// 无任何有效特征时返回中性值0.5。
func (s *AcousticScorer) Score(features map[string]float64) float64 {
	score := 0.0
	validFeatures := 0

	// 基频变化小表示音调单调
	if f0Std, ok := lookupFeature(features, featF0Std); ok {
		part := 1.0 - minF(1.0, f0Std/10.0)
		score += part * 0.25
		validFeatures++
	}

	// 响度低表示低能量状态
	if loudnessMean, ok := lookupFeature(features, featLoudnessMean); ok {
		part := 1.0 - minF(1.0, (loudnessMean+60.0)/60.0)
		if part < 0 {
			part = 0
		}
		score += part * 0.20
		validFeatures++
	}

	// 音高微扰大表示声音不稳定
	if jitter, ok := lookupFeature(features, featJitter); ok {
		score += minF(1.0, jitter*100.0) * 0.15
		validFeatures++
	}

	// 振幅微扰大表示音质差
	if shimmer, ok := lookupFeature(features, featShimmer); ok {
		score += minF(1.0, shimmer/2.0) * 0.15
		validFeatures++
	}

	// 谐噪比低表示音质差
	if hnr, ok := lookupFeature(features, featHNR); ok {
		part := 1.0 - minF(1.0, hnr/20.0)
		if part < 0 {
			part = 0
		}
		score += part * 0.15
		validFeatures++
	}

	// 响度变化小表示语音单调
	if loudnessStd, ok := lookupFeature(features, featLoudnessStd); ok {
		part := 1.0 - minF(1.0, loudnessStd/20.0)
		score += part * 0.10
		validFeatures++
	}

	if validFeatures == 0 {
		return 0.5
	}

	return clamp(score, 0.0, 1.0)
}

// lookupFeature 查找特征值，先精确匹配，再做双向子串模糊匹配。
// 上游提取工具的特征命名在不同版本间不完全一致。
func lookupFeature(features map[string]float64, name string) (float64, bool) {
	if v, ok := features[name]; ok {
		return v, true
	}
	for key, v := range features {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return v, true
		}
	}
	return 0, false
}

// AcousticLevel 评分对应的风险描述
func AcousticLevel(score float64) string {
	switch {
	case score < 0.2:
		return "低风险"
	case score < 0.4:
		return "轻度风险"
	case score < 0.6:
		return "中度风险"
	case score < 0.8:
		return "较高风险"
	default:
		return "高风险"
	}
}

// EmotionalIndicators 从声学特征推导的情绪维度指标
func EmotionalIndicators(scorer FeatureScorer, features map[string]float64) map[string]float64 {
	indicators := make(map[string]float64)

	loudnessStd, hasLoudnessStd := lookupFeature(features, featLoudnessStd)
	f0Std, hasF0Std := lookupFeature(features, featF0Std)
	if hasLoudnessStd && hasF0Std {
		indicators["活跃度"] = minF(1.0, (loudnessStd/20.0+f0Std/10.0)/2.0)
	}

	jitter, hasJitter := lookupFeature(features, featJitter)
	shimmer, hasShimmer := lookupFeature(features, featShimmer)
	if hasJitter && hasShimmer {
		indicators["紧张度"] = minF(1.0, (jitter*100.0+shimmer/2.0)/2.0)
	}

	if hnr, ok := lookupFeature(features, featHNR); ok && hasF0Std {
		stability := (hnr/20.0 + (1.0 - minF(1.0, f0Std/10.0))) / 2.0
		if stability < 0 {
			stability = 0
		}
		indicators["情绪稳定性"] = stability
	}

	indicators["抑郁倾向"] = scorer.Score(features)

	if energy, ok := lookupFeature(features, featEnergyMean); ok {
		indicators["能量水平"] = minF(1.0, energy/1000.0)
	}

	return indicators
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
