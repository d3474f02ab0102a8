package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature API so the fx graph can collect and
// register them on the fiber app.
type Route interface {
	Setup(app *fiber.App)
}
