package services

import "MindPulseGo/config"

// analyticsConfig 返回进程级分析参数
func analyticsConfig() config.AnalyticsConfig {
	return config.Analytics
}
