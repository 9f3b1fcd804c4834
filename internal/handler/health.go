package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/nutri-api/internal/middleware"
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	checkDatabase = "database"
	checkRedis    = "redis"

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler reports whether the service and its dependencies respond.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// CheckHealth answers 200 when every required check passes and 503 otherwise.
// The database is required; redis only degrades the report.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	response := HealthResponse{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	if obs.HasCheck(checkDatabase) && h.server.DB != nil {
		result := h.probe(c.Request().Context(), &logger, checkDatabase, obs.HealthChecks.Timeout, h.server.DB.Pool.Ping)
		response.Checks[checkDatabase] = result
		if result.Status != statusHealthy {
			response.Status = statusUnhealthy
		}
	}

	if obs.HasCheck(checkRedis) && h.server.Redis != nil {
		response.Checks[checkRedis] = h.probe(c.Request().Context(), &logger, checkRedis, obs.HealthChecks.Timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if response.Status != statusHealthy {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure("overall", map[string]interface{}{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) probe(
	parent context.Context,
	logger *zerolog.Logger,
	name string,
	timeout time.Duration,
	ping func(context.Context) error,
) CheckResult {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("dependency health check failed")

		h.recordFailure(name, map[string]interface{}{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{
			Status:       statusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	return CheckResult{
		Status:       statusHealthy,
		ResponseTime: elapsed.String(),
	}
}

func (h *HealthHandler) recordFailure(check string, attrs map[string]interface{}) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = check
	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
