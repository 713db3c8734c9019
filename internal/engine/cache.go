package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// TranslationCache is a Redis read-through cache for backend calls.
// Keys are scoped by model and language pair; the text itself is hashed.
// Every failure is non-fatal: a broken cache degrades to backend calls.
type TranslationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewTranslationCache connects to Redis and verifies the connection.
func NewTranslationCache(host string, port int, password string, db int, ttl time.Duration, logger *logrus.Entry) (*TranslationCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Password:     password,
		DB:           db,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis translation cache")

	return &TranslationCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func cacheKey(model, src, tgt, text string) string {
	hash := sha256.Sum256([]byte(text))
	return fmt.Sprintf("translation:%s:%s:%s:%s", model, src, tgt, hex.EncodeToString(hash[:]))
}

// Get returns the cached translation, or ok=false on miss or error.
func (c *TranslationCache) Get(ctx context.Context, model, src, tgt, text string) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(model, src, tgt, text)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.WithError(err).Debug("Cache get failed")
		return "", false
	}
	return val, true
}

// Set stores a translation with the configured TTL.
func (c *TranslationCache) Set(ctx context.Context, model, src, tgt, text, translated string) {
	if err := c.client.Set(ctx, cacheKey(model, src, tgt, text), translated, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Debug("Cache set failed")
	}
}

// HealthCheck pings Redis.
func (c *TranslationCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (c *TranslationCache) Close() error {
	return c.client.Close()
}
