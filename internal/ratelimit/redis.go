package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/autoventa/lead-intake/pkg/logging"
)

const redisKeyPrefix = "leadintake:ratelimit:"

// RedisLimiter enforces a fixed-window counter in Redis so the cap holds
// across horizontally scaled instances. The first hit in a window sets
// the key's expiry; blocked attempts only bump a counter that is already
// over the cap. Fails open when Redis is unreachable.
type RedisLimiter struct {
	rdb    *redis.Client
	window time.Duration
	max    int
	logger *logging.Logger
}

// NewRedisLimiter creates a Redis-backed limiter allowing max requests
// per window for each client.
func NewRedisLimiter(rdb *redis.Client, window time.Duration, max int, logger *logging.Logger) *RedisLimiter {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisLimiter{
		rdb:    rdb,
		window: window,
		max:    max,
		logger: logger,
	}
}

// Allow reports whether the client may proceed.
func (l *RedisLimiter) Allow(clientID string) bool {
	if l.max <= 0 || l.window <= 0 {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := redisKeyPrefix + clientID
	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limit check failed, allowing request", "error", err, "client_id", clientID)
		return true
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("rate limit expiry not set", "error", err, "client_id", clientID)
		}
	}

	return n <= int64(l.max)
}
