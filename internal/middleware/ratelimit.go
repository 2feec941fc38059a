package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/campmatch/backend/internal/http/dto"
)

// RateLimit is a fixed-window counter keyed by client IP. Redis failures
// fail open so the API stays up when Redis is down.
func RateLimit(client *redis.Client, maxRequests int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%d", c.IP(), time.Now().Unix()/int64(window.Seconds()))

		ctx := context.Background()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			client.Expire(ctx, key, window)
		}

		if count > int64(maxRequests) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.NewErrorResponse("RATE_LIMITED", "too many requests", nil))
		}

		return c.Next()
	}
}
