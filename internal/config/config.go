package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config 安全服务配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig

	HTTP struct {
		Addr string // 监听地址，如 ":8086"
	}

	// 安全核心配置
	Safety struct {
		// 关键词覆盖文件（YAML），为空则使用内置词表
		KeywordsFile string

		// 提问原文加密密钥（必填）与盐
		EncryptionKey  string
		EncryptionSalt string

		// 危机转介 Webhook（为空则不通知，仅记录审计）
		CrisisWebhookURL string

		// 审核队列 Stream 名称
		ModerationStream string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	// 从环境变量加载（带默认值）
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "opora")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 10)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8086")

	cfg.Safety.KeywordsFile = getEnv("SAFETY_KEYWORDS_FILE", "")
	cfg.Safety.EncryptionKey = getEnv("SAFETY_ENCRYPTION_KEY", "")
	cfg.Safety.EncryptionSalt = getEnv("SAFETY_ENCRYPTION_SALT", "opora-safety")
	cfg.Safety.CrisisWebhookURL = getEnv("CRISIS_WEBHOOK_URL", "")
	cfg.Safety.ModerationStream = getEnv("MODERATION_STREAM", "opora:moderation:flagged")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	// 加密密钥没有安全的默认值，缺失直接报错
	if cfg.Safety.EncryptionKey == "" {
		return nil, fmt.Errorf("SAFETY_ENCRYPTION_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
