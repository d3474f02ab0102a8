package reportbuilder

import (
	"go-crossroads/internal/config"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BuilderApi struct {
	Controller *BuilderController
	config     *config.Config
}

func NewBuilderApi(controller *BuilderController, config *config.Config) *BuilderApi {
	return &BuilderApi{
		Controller: controller,
		config:     config,
	}
}

func (api *BuilderApi) Setup(app *fiber.App) {
	group := app.Group("/api/report-builder/:type", middleware.SessionMiddleware(api.config.SkipAuth))
	group.Post("/open", api.Controller.Open)
	group.Post("/dispatch", api.Controller.Dispatch)
	group.Post("/generate", api.Controller.Generate)
}
