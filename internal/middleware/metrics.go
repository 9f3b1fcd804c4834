package middleware

import (
	"time"

	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests no route matched, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records Prometheus request metrics.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Record counts each request by route template, method and final status.
func (m *MetricsMiddleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}

			m.server.Metrics.RecordHTTPRequest(route, c.Request().Method, statusOf(c, err), time.Since(start))
			return err
		}
	}
}
