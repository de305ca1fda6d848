package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	sharedConfig "github.com/nitrodesk/nitrodesk/internal/shared/config"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// NewRedisClient connects and pings. It returns nil, nil when redis is disabled.
func NewRedisClient(ctx context.Context, cfg sharedConfig.RedisConfig, log logger.Interface) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}

	log.Infow("redis connection established", "address", cfg.GetAddr())
	return client, nil
}
