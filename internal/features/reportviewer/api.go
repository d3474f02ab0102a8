package reportviewer

import (
	"go-crossroads/internal/config"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ViewerApi struct {
	Controller *ViewerController
	config     *config.Config
}

func NewViewerApi(controller *ViewerController, config *config.Config) *ViewerApi {
	return &ViewerApi{
		Controller: controller,
		config:     config,
	}
}

func (api *ViewerApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports/:type", middleware.SessionMiddleware(api.config.SkipAuth))
	group.Get("/view", api.Controller.View)
	group.Get("/print", api.Controller.Print)
	group.Get("/export", api.Controller.Export)
}
