package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"condogest_echo/internal/services"
)

// CacheKeyPrefix namespaces the response-cache keys so the cleanup task can
// sweep them without touching rate-limit counters.
const CacheKeyPrefix = "cache:"

type cachedResponse struct {
	Body []byte `json:"body"`
}

type bodyCapture struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheResponse caches successful GET responses in Redis for the given
// duration, keyed by request URI. Mutating methods pass through untouched.
func CacheResponse(cache *services.RedisCache, duration time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cache == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := CacheKeyPrefix + c.Request().RequestURI

			var cached cachedResponse
			if err := cache.Get(c.Request().Context(), key, &cached); err == nil {
				return c.JSONBlob(http.StatusOK, cached.Body)
			}

			capture := &bodyCapture{ResponseWriter: c.Response().Writer, buf: &bytes.Buffer{}}
			c.Response().Writer = capture

			if err := next(c); err != nil {
				return err
			}

			if c.Response().Status == http.StatusOK {
				// Cache set errors only cost us the cache, not the response
				_ = cache.Set(c.Request().Context(), key, cachedResponse{Body: capture.buf.Bytes()}, duration)
			}
			return nil
		}
	}
}
