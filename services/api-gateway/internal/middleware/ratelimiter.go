package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/waste3d/learnplatform-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redisClient *redis.Client
	log         *logger.Logger
}

// NewRateLimiter: с nil-клиентом (и с nil *RateLimiter) лимиты не применяются.
func NewRateLimiter(client *redis.Client, log *logger.Logger) *RateLimiter {
	return &RateLimiter{redisClient: client, log: log.With("component", "RateLimiter")}
}

// Limit считает запросы в окне. Ключ - пользователь, если он уже известен,
// иначе IP.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redisClient == nil {
			c.Next()
			return
		}

		subject := "ip:" + c.ClientIP()
		if uid := c.GetUint("userId"); uid != 0 {
			subject = fmt.Sprintf("user:%d", uid)
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, subject)

		count, err := rl.hit(c, key, window)
		if err != nil {
			rl.log.Warn("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			ttl, err := rl.redisClient.TTL(c, key).Result()
			if err != nil || ttl < 0 {
				ttl = window
			}

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}

// hit атомарно заводит ключ с TTL окна и увеличивает счётчик.
// SETNX в одной транзакции с INCR не оставляет ключ без срока жизни.
func (rl *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := rl.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val(), nil
}
