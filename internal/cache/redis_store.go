package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/redis/go-redis/v9"

	"recipe-finder/internal/config"
)

const redisKeyPrefix = "recipe-finder:cache:"

// RedisStore keeps cached responses in Redis and relies on native key expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient connects to the Redis server named in cfg and pings it.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	log.WithField("addr", cfg.RedisAddr).Info("redis connection opened")
	return client, nil
}

// Get returns the body stored under key, if Redis still holds it.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := s.client.Get(ctx, redisKeyPrefix+Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached response: %w", err)
	}
	return body, true, nil
}

// Set stores body under key with a ttl expiry.
func (s *RedisStore) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKeyPrefix+Key(key), body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached response: %w", err)
	}
	return nil
}
