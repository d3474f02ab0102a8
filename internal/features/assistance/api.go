package assistance

import (
	"go-crossroads/internal/config"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AssistanceApi struct {
	Controller *AssistanceController
	config     *config.Config
}

func NewAssistanceApi(controller *AssistanceController, config *config.Config) *AssistanceApi {
	return &AssistanceApi{
		Controller: controller,
		config:     config,
	}
}

func (api *AssistanceApi) Setup(app *fiber.App) {
	group := app.Group("/api/assistance-requests", middleware.SessionMiddleware(api.config.SkipAuth))
	group.Post("/", api.Controller.Create)
	group.Post("/validate", api.Controller.Validate)
	group.Post("/reduce", api.Controller.Reduce)
}
