package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"tamilsociety/internal/infrastructure/ratelimit"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/logger"
)

// RateLimit throttles by client IP under the named action's policy.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, retryAfter := limiter.Allow(ip, action)
			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				logger.Warn("RATE LIMIT: %s blocked on %s (retry in %ds)", ip, action, seconds)
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return errors.TooManyRequests("Rate limit exceeded")
			}

			return next(c)
		}
	}
}
