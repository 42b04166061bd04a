package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"condogest_echo/internal/services"
)

// RateLimit rejects callers that exceed limit requests per window, counted
// per client IP in Redis. Windows are fixed, starting at the first request.
// If Redis is unavailable the request is allowed through.
func RateLimit(cache *services.RedisCache, name string, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cache == nil {
				return next(c)
			}

			key := fmt.Sprintf("ratelimit:%s:%s", name, c.RealIP())
			count, err := cache.Increment(c.Request().Context(), key, window)
			if err != nil {
				c.Logger().Warnf("rate limiter unavailable: %v", err)
				return next(c)
			}

			if count > limit {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
			}
			return next(c)
		}
	}
}
