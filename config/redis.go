package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil, nil when Redis is not configured; callers fall
// back to the primary store for sessions and skip list caching.
func ConnectRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	var opt *redis.Options
	switch {
	case cfg.RedisURL != "":
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	case cfg.RedisAddr != "":
		opt = &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		}
	default:
		return nil, nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
