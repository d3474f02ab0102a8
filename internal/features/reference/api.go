package reference

import (
	"go-crossroads/internal/config"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReferenceApi struct {
	Controller *ReferenceController
	config     *config.Config
}

func NewReferenceApi(controller *ReferenceController, config *config.Config) *ReferenceApi {
	return &ReferenceApi{
		Controller: controller,
		config:     config,
	}
}

func (api *ReferenceApi) Setup(app *fiber.App) {
	group := app.Group("/api/reference", middleware.SessionMiddleware(api.config.SkipAuth))
	group.Get("/:kind", api.Controller.GetList)
}
