package reference

import (
	"errors"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReferenceController struct {
	Service ReferenceService
}

func NewReferenceController(service ReferenceService) *ReferenceController {
	return &ReferenceController{
		Service: service,
	}
}

// GetList godoc
// @Summary Get a reference list
// @Description Dropdown options from the upstream API. A failed fetch returns an empty list flagged unavailable.
// @Tags reference
// @Produce json
// @Param kind path string true "List kind, e.g. units or event-types"
// @Success 200 {object} List
// @Failure 404 {object} map[string]interface{}
// @Router /api/reference/{kind} [get]
func (ctrl *ReferenceController) GetList(c *fiber.Ctx) error {
	kind := models.ReferenceKind(c.Params("kind"))

	list, err := ctrl.Service.GetList(c.UserContext(), middleware.SessionFrom(c), kind)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(list)
}
