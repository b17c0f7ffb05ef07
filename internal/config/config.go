package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Webhook     WebhookConfig
	ThreeCommas ThreeCommasConfig
	Sentiment   SentimentConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// WebhookConfig holds inbound webhook authentication settings.
// An empty Token disables authentication entirely.
type WebhookConfig struct {
	Token string
}

// ThreeCommasConfig holds 3Commas API credentials and dispatch settings
type ThreeCommasConfig struct {
	APIKey    string
	APISecret string
	BotID     int
	BaseURL   string
	DryRun    bool
}

// SentimentConfig holds the sentiment inference endpoint and decision thresholds
type SentimentConfig struct {
	APIURL              string
	APIToken            string
	Timeout             time.Duration
	BuyThreshold        float64
	SellThreshold       float64
	ConfidenceThreshold float64
	CacheTTL            time.Duration
}

// RedisConfig holds Redis configuration. An empty Host disables the cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig holds Kafka/Redpanda configuration. An empty broker list
// disables decision event publishing.
type KafkaConfig struct {
	Brokers        []string
	DecisionsTopic string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Webhook: WebhookConfig{
			Token: getEnv("TV_WEBHOOK_TOKEN", ""),
		},
		ThreeCommas: ThreeCommasConfig{
			APIKey:    getEnv("THREECOMMAS_API_KEY", ""),
			APISecret: getEnv("THREECOMMAS_API_SECRET", ""),
			BotID:     getEnvInt("THREECOMMAS_BOT_ID", 0),
			BaseURL:   getEnv("THREECOMMAS_BASE_URL", "https://api.3commas.io/public/api"),
			DryRun:    getEnvBool("DRY_RUN", false),
		},
		Sentiment: SentimentConfig{
			APIURL:              getEnv("SENTIMENT_API_URL", "http://localhost:8000/classify"),
			APIToken:            getEnv("SENTIMENT_API_TOKEN", ""),
			Timeout:             time.Duration(getEnvInt("SENTIMENT_TIMEOUT_SECONDS", 30)) * time.Second,
			BuyThreshold:        getEnvFloat("SENTIMENT_BUY_THRESHOLD", 0.2),
			SellThreshold:       getEnvFloat("SENTIMENT_SELL_THRESHOLD", -0.2),
			ConfidenceThreshold: getEnvFloat("CONFIDENCE_THRESHOLD", 60),
			CacheTTL:            time.Duration(getEnvInt("SENTIMENT_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		Kafka: KafkaConfig{
			Brokers:        parseBrokers(getEnv("KAFKA_BROKERS", "")),
			DecisionsTopic: getEnv("KAFKA_DECISIONS_TOPIC", "trading.decisions"),
		},
	}
}

// Configured reports whether all credentials needed to dispatch a deal are set
func (t *ThreeCommasConfig) Configured() bool {
	return t.APIKey != "" && t.APISecret != "" && t.BotID != 0
}

// Address returns the Redis address in host:port format
func (r *RedisConfig) Address() string {
	return r.Host + ":" + r.Port
}

// Enabled reports whether a Redis cache is configured
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Enabled reports whether decision event publishing is configured
func (k *KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.EqualFold(value, "true")
	}
	return defaultValue
}

// parseBrokers splits a comma-separated broker list
func parseBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
