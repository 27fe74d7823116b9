package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shutterspot/api/internal/server"
)

// RateLimitMiddleware throttles abuse-prone routes with a fixed-window
// counter in Redis, keyed by client IP and route path.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit allows at most limit requests per window from a single IP for
// the wrapped route. When Redis is unreachable the limiter fails open;
// losing rate limiting is better than losing logins.
func (r *RateLimitMiddleware) Limit(limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.RealIP())

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				r.server.Logger.Warn().
					Err(err).
					Str("key", key).
					Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			if count == 1 {
				r.server.Redis.Expire(ctx, key, window)
			}

			if count > limit {
				r.RecordRateLimitHit(c.Path())
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit records a New Relic custom event when a client is
// throttled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
