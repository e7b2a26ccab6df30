package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/recipe-service/internal/config"
	"github.com/spec-kit/recipe-service/internal/persistence"
	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

// RateLimiter applies a fixed-window request budget per client IP and route,
// counted in Redis. Without a Redis client every request passes.
type RateLimiter struct {
	redis  *persistence.Redis
	cfg    config.RateLimitConfig
	logger *zap.Logger
}

// NewRateLimiter constructs a limiter.
func NewRateLimiter(redis *persistence.Redis, cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{redis: redis, cfg: cfg, logger: logger}
}

// Handle is the fiber middleware.
func (l *RateLimiter) Handle(c *fiber.Ctx) error {
	if l == nil || !l.redis.Enabled() || l.cfg.Requests <= 0 {
		return c.Next()
	}

	ctx := c.UserContext()
	key := rateLimitKey(routePath(c), c.IP())
	count, err := l.hit(ctx, key)
	if err != nil {
		// Redis outages must not lock users out of login.
		l.logger.Warn("rate limiter unavailable", zap.Error(err))
		return c.Next()
	}
	if count > int64(l.cfg.Requests) {
		return apperrors.NewTooManyRequests("request limit exceeded, try again later")
	}
	return c.Next()
}

// hit counts one request in the current window. A key left without a TTL,
// for example after a failed EXPIRE, gets one on the next hit.
func (l *RateLimiter) hit(ctx context.Context, key string) (int64, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if ttl.Val() < 0 {
		if err := l.redis.Client.Expire(ctx, key, l.cfg.Window()).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.String("key", key), zap.Error(err))
		}
	}
	return incr.Val(), nil
}

func rateLimitKey(route, ip string) string {
	return fmt.Sprintf("ratelimit:%s:%s", route, ip)
}
