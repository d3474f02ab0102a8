package system

import (
	"context"
	"time"

	"go-crossroads/internal/connectors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const upstreamPingTimeout = 5 * time.Second

type HealthController struct {
	Backend connectors.Backend
	Logger  *zap.Logger
}

func NewHealthController(backend connectors.Backend, logger *zap.Logger) *HealthController {
	return &HealthController{
		Backend: backend,
		Logger:  logger,
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Check if the server is up
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Router       /health [get]
func (h *HealthController) HealthCheck(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// UpstreamCheck godoc
// @Summary      Upstream health
// @Description  Check that the case-management API answers
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health/upstream [get]
func (h *HealthController) UpstreamCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), upstreamPingTimeout)
	defer cancel()

	if err := h.Backend.Ping(ctx); err != nil {
		h.Logger.Warn("upstream health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
