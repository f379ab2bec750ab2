package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/rental-catalog/internal/config"
	"github.com/deppfellow/rental-catalog/internal/middleware"
	"github.com/deppfellow/rental-catalog/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// probe checks one dependency. A failing required probe turns /status
// into a 503; an optional one is only reported.
type probe struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

type HealthHandler struct {
	Handler
	checks config.HealthChecksConfig
	probes []probe
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}
	if s.Config != nil && s.Config.Observability != nil {
		h.checks = s.Config.Observability.HealthChecks
	}

	if s.DB != nil && s.DB.Pool != nil {
		h.probes = append(h.probes, probe{name: "database", required: true, ping: s.DB.Pool.Ping})
	}
	if s.Redis != nil {
		h.probes = append(h.probes, probe{
			name: "redis",
			ping: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}
	return h
}

// CheckHealth answers 200 when every required dependency responds, else 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.environment(),
		"checks":      checks,
	}

	healthy := true
	for _, p := range h.probes {
		if !h.checks.Runs(p.name) {
			continue
		}
		result, ok := h.run(c.Request().Context(), p, &logger)
		checks[p.name] = result
		if !ok && p.required {
			healthy = false
		}
	}

	if !healthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordFailure("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) run(ctx context.Context, p probe, logger *zerolog.Logger) (map[string]any, bool) {
	timeout := h.checks.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	err := p.ping(ctx)
	elapsed := time.Since(started)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", p.name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordFailure(p.name, map[string]any{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return map[string]any{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}, false
	}

	return map[string]any{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}, true
}

func (h *HealthHandler) environment() string {
	if h.server == nil || h.server.Config == nil {
		return ""
	}
	return h.server.Config.Primary.Env
}

func (h *HealthHandler) recordFailure(check string, attrs map[string]any) {
	if h.server == nil {
		return
	}
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	attrs["check_type"] = check
	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
