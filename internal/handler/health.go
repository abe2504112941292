package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/photogram/internal/middleware"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	defaultHealthCheckTimeout = 5 * time.Second
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth probes every enabled dependency (database, redis).
//
// It returns:
//   - 200 OK if all checks pass
//   - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	timeout := defaultHealthCheckTimeout
	if cfg != nil && cfg.HealthChecks.Timeout > 0 {
		timeout = cfg.HealthChecks.Timeout
	}

	enabled := func(name string) bool {
		return cfg == nil || cfg.HealthCheckEnabled(name)
	}

	if enabled("database") {
		response.Checks["database"] = h.runCheck(c.Request().Context(), logger, "database", timeout, func(ctx context.Context) error {
			if h.server.DB == nil {
				return errNotConfigured
			}
			return h.server.DB.Pool.Ping(ctx)
		})
	}

	if enabled("redis") {
		response.Checks["redis"] = h.runCheck(c.Request().Context(), logger, "redis", timeout, func(ctx context.Context) error {
			if h.server.Redis == nil {
				return errNotConfigured
			}
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	for _, check := range response.Checks {
		if check.Status != statusHealthy {
			response.Status = statusUnhealthy
		}
	}

	if response.Status != statusHealthy {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]any{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

type healthError string

func (e healthError) Error() string { return string(e) }

const errNotConfigured = healthError("not configured")

func (h *HealthHandler) runCheck(
	parent context.Context,
	logger zerolog.Logger,
	name string,
	timeout time.Duration,
	ping func(ctx context.Context) error,
) checkResult {
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
			Msg("health check failed")

		h.recordHealthCheckError(map[string]any{
			"check_type":       name,
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return checkResult{
			Status:       statusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	return checkResult{
		Status:       statusHealthy,
		ResponseTime: elapsed.String(),
	}
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
