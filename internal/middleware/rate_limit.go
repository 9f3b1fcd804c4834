package middleware

import (
	"strconv"
	"time"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const rateLimitVisitorTTL = 3 * time.Minute

// RateLimitMiddleware enforces a per client IP token bucket and reports hits.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns the limiter for server.rate_limit requests per second.
// A zero rate disables it.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.Server
	if cfg.RateLimit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	retryAfter := time.Duration(float64(time.Second) / cfg.RateLimit)

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RateLimit),
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: rateLimitVisitorTTL,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(errs.RetryAfterSeconds(retryAfter)))
			return errs.NewTooManyRequestsError(i18n.FromContext(c.Request().Context(), i18n.MsgTooManyRequests), retryAfter)
		},
	})
}

// RecordRateLimitHit counts a rejected request and records a New Relic event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.Metrics.RecordRateLimited(endpoint)

	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
