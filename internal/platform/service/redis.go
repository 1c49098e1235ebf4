package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"ecodrip-server/internal/config"

	"github.com/redis/go-redis/v9"
)

var (
	redisMu     sync.Mutex
	redisInited bool
	redisClient *redis.Client
)

// GetRedisClient returns the shared client, or nil when Redis is disabled or unreachable.
func GetRedisClient() *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()
	if !redisInited {
		redisClient = dialRedis(config.Get().Redis)
		redisInited = true
	}
	return redisClient
}

// RedisKey joins parts under the configured prefix.
func RedisKey(parts ...string) string {
	prefix := config.Get().Redis.Prefix
	if prefix == "" {
		prefix = "ecodrip"
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

func dialRedis(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("⚠️ Redis unavailable, falling back to in-memory mode: %v", err)
		return nil
	}

	log.Printf("✅ Redis connected: %s (db=%d)", cfg.Addr, cfg.DB)
	return client
}

// CloseRedisClient closes the shared client and lets the next call dial again.
func CloseRedisClient() error {
	redisMu.Lock()
	defer redisMu.Unlock()
	client := redisClient
	redisClient = nil
	redisInited = false
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
