package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SAFETY_ENCRYPTION_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "opora", cfg.Database.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":8086", cfg.HTTP.Addr)
	assert.Equal(t, "", cfg.Safety.KeywordsFile)
	assert.Equal(t, "opora-safety", cfg.Safety.EncryptionSalt)
	assert.Equal(t, "opora:moderation:flagged", cfg.Safety.ModerationStream)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SAFETY_ENCRYPTION_KEY", "test-key")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SAFETY_KEYWORDS_FILE", "/etc/opora/keywords.yaml")
	t.Setenv("CRISIS_WEBHOOK_URL", "https://hooks.example.com/crisis")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "/etc/opora/keywords.yaml", cfg.Safety.KeywordsFile)
	assert.Equal(t, "https://hooks.example.com/crisis", cfg.Safety.CrisisWebhookURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// 加密密钥缺失必须报错而不是用弱默认值启动
func TestLoad_EncryptionKeyRequired(t *testing.T) {
	t.Setenv("SAFETY_ENCRYPTION_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY_ENCRYPTION_KEY")
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SAFETY_ENCRYPTION_KEY", "test-key")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Database: "opora",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=opora sslmode=disable", dsn)
}
