package middleware

import (
	"github.com/deppfellow/nutri-api/internal/server"
)

// Middlewares groups every middleware component so routing builds them once.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
	Metrics         *MetricsMiddleware
}

// NewMiddlewares constructs all middleware components. Tracing degrades to
// a no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Metrics:         NewMetricsMiddleware(s),
	}
}
