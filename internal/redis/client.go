package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dreynolds89/tv-sentiment-relay/internal/config"
)

// Client wraps the Redis client with sentiment-cache operations. The service
// runs fine without it; callers treat a nil *Client as "cache disabled".
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a new Redis client and verifies the connection
func New(cfg config.RedisConfig, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks if Redis is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// GetScore retrieves a cached sentiment score. The second return value is
// false on a cache miss.
func (c *Client) GetScore(ctx context.Context, key string) (float64, bool, error) {
	score, err := c.rdb.Get(ctx, key).Float64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read cached score: %w", err)
	}
	return score, true, nil
}

// SetScore caches a sentiment score with the configured TTL
func (c *Client) SetScore(ctx context.Context, key string, score float64) error {
	return c.rdb.Set(ctx, key, score, c.ttl).Err()
}
