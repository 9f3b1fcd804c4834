package router

import (
	"github.com/deppfellow/nutri-api/internal/handler"
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints outside the food and user
// resources: health, metrics and API docs.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	if s.Metrics != nil {
		r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/static/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
