package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "", cfg.Webhook.Token)
	assert.Equal(t, "https://api.3commas.io/public/api", cfg.ThreeCommas.BaseURL)
	assert.False(t, cfg.ThreeCommas.DryRun)
	assert.False(t, cfg.ThreeCommas.Configured())
	assert.Equal(t, 0.2, cfg.Sentiment.BuyThreshold)
	assert.Equal(t, -0.2, cfg.Sentiment.SellThreshold)
	assert.Equal(t, 60.0, cfg.Sentiment.ConfidenceThreshold)
	assert.Equal(t, 30*time.Second, cfg.Sentiment.Timeout)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "trading.decisions", cfg.Kafka.DecisionsTopic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TV_WEBHOOK_TOKEN", "secret123")
	t.Setenv("THREECOMMAS_API_KEY", "key")
	t.Setenv("THREECOMMAS_API_SECRET", "secret")
	t.Setenv("THREECOMMAS_BOT_ID", "12345")
	t.Setenv("DRY_RUN", "TRUE")
	t.Setenv("SENTIMENT_BUY_THRESHOLD", "0.35")
	t.Setenv("SENTIMENT_TIMEOUT_SECONDS", "10")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")

	cfg := Load()

	assert.Equal(t, "secret123", cfg.Webhook.Token)
	assert.Equal(t, 12345, cfg.ThreeCommas.BotID)
	assert.True(t, cfg.ThreeCommas.DryRun)
	assert.True(t, cfg.ThreeCommas.Configured())
	assert.Equal(t, 0.35, cfg.Sentiment.BuyThreshold)
	assert.Equal(t, 10*time.Second, cfg.Sentiment.Timeout)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Address())
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("THREECOMMAS_BOT_ID", "not-a-number")
	t.Setenv("SENTIMENT_BUY_THRESHOLD", "high")

	cfg := Load()
	assert.Equal(t, 0, cfg.ThreeCommas.BotID)
	assert.Equal(t, 0.2, cfg.Sentiment.BuyThreshold)
}
