package middleware

import (
	"context"
	"math"
	"time"

	platformservice "ecodrip-server/internal/platform/service"

	"github.com/redis/go-redis/v9"
)

const redisRateLimitTimeout = 500 * time.Millisecond

// allowByRedisRateLimit is a fixed window counter: burst requests per window,
// where the window is how long rps takes to refill burst tokens.
// Non-positive limits disable the check.
func allowByRedisRateLimit(ctx context.Context, client *redis.Client, scope, ip string, rps float64, burst int) (bool, error) {
	if rps <= 0 || burst <= 0 {
		return true, nil
	}

	window := time.Duration(math.Ceil(float64(burst)/rps)) * time.Second
	if window < time.Second {
		window = time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, redisRateLimitTimeout)
	defer cancel()

	key := platformservice.RedisKey("rate", scope, ip)
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(burst), nil
}
