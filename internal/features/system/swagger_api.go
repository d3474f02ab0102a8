package system

import (
	"go-crossroads/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type SwaggerApi struct {
	config *config.Config
}

func NewSwaggerApi(cfg *config.Config) *SwaggerApi {
	return &SwaggerApi{config: cfg}
}

// Setup serves the API docs outside production only.
func (h *SwaggerApi) Setup(app *fiber.App) {
	if h.config.IsProduction() {
		return
	}
	app.Get("/swagger/*", swagger.New(swagger.Config{
		Title:        "Crossroads Reports API",
		DeepLinking:  true,
		DocExpansion: "list",
	}))
}
