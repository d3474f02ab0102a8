package casesearch

import (
	"go-crossroads/internal/config"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type CaseSearchApi struct {
	Controller *CaseSearchController
	config     *config.Config
}

func NewCaseSearchApi(controller *CaseSearchController, config *config.Config) *CaseSearchApi {
	return &CaseSearchApi{
		Controller: controller,
		config:     config,
	}
}

func (api *CaseSearchApi) Setup(app *fiber.App) {
	session := middleware.SessionMiddleware(api.config.SkipAuth)

	app.Get("/api/case-search", session, api.Controller.Search)
	app.Get("/api/ws/case-search", session, api.Controller.Upgrade, websocket.New(api.Controller.HandleWebSocket))
}
