package config

import (
	"fmt"
	"github.com/spf13/viper"
)

// Config 存储所有配置信息
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// 数据库配置
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	// Redis配置
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// 在线AI情感增强配置（可选，未配置时退化为本地词典分析）
	AIEnabled     bool   `mapstructure:"AI_ENABLED"`
	AIAPIKey      string `mapstructure:"AI_API_KEY"`
	AIAPIEndpoint string `mapstructure:"AI_API_ENDPOINT"`

	// JWT配置
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// AnalyticsConfig 分析引擎的经验常数。默认值与参考行为保持一致，
// 仅作为可调参数暴露，不要随意修改默认值。
type AnalyticsConfig struct {
	// 情绪高峰检测的标准差倍数
	SpikeSigma float64 `mapstructure:"ANALYTICS_SPIKE_SIGMA"`
	// 睡眠/情绪记录配对的最大时间间隔（小时）
	SleepMoodPairWindowHours float64 `mapstructure:"ANALYTICS_SLEEP_PAIR_WINDOW_HOURS"`
	// 生活质量/情绪记录配对的最大时间间隔（小时）
	LifeQualityPairWindowHours float64 `mapstructure:"ANALYTICS_LIFE_PAIR_WINDOW_HOURS"`
	// 答案一致性异常的方差上限与均值下限组合
	ConsistencyVarianceMax float64 `mapstructure:"ANALYTICS_CONSISTENCY_VARIANCE_MAX"`
	ConsistencyMeanMin     float64 `mapstructure:"ANALYTICS_CONSISTENCY_MEAN_MIN"`
}

// DefaultAnalyticsConfig 返回默认分析参数
func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		SpikeSigma:                 2.0,
		SleepMoodPairWindowHours:   72,
		LifeQualityPairWindowHours: 168,
		ConsistencyVarianceMax:     0.5,
		ConsistencyMeanMin:         1.5,
	}
}

// Analytics 进程级只读分析参数，启动时加载一次
var Analytics = DefaultAnalyticsConfig()

// LoadConfig 从环境变量或配置文件加载配置
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// 允许配置文件不存在，此时会从环境变量中读取
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	analytics := DefaultAnalyticsConfig()
	if err = viper.Unmarshal(&analytics); err != nil {
		return
	}
	Analytics = analytics

	return
}

// GetDBConnString 返回数据库连接字符串
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString 返回Redis连接字符串
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
