package system

import (
	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	Controller *HealthController
}

func NewHealthApi(controller *HealthController) *HealthApi {
	return &HealthApi{Controller: controller}
}

// Setup registers health check routes
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.Controller.HealthCheck)
	app.Get("/health/upstream", h.Controller.UpstreamCheck)
}
