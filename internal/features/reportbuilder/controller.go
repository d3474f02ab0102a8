package reportbuilder

import (
	"errors"

	"go-crossroads/internal/features/reportconfig"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BuilderController struct {
	Service BuilderService
}

func NewBuilderController(service BuilderService) *BuilderController {
	return &BuilderController{
		Service: service,
	}
}

type DispatchRequest struct {
	State  State  `json:"state"`
	Action Action `json:"action"`
}

type GenerateRequest struct {
	State State `json:"state"`
}

// Open godoc
// @Summary Open the report builder
// @Description Fresh wizard state, form description and reference lists for a report type
// @Tags report-builder
// @Produce json
// @Param type path string true "Report type"
// @Success 200 {object} OpenResult
// @Failure 404 {object} map[string]interface{}
// @Router /api/report-builder/{type}/open [post]
func (ctrl *BuilderController) Open(c *fiber.Ctx) error {
	reportType := reportconfig.ReportType(c.Params("type"))

	result, err := ctrl.Service.Open(c.UserContext(), middleware.SessionFrom(c), reportType)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// Dispatch godoc
// @Summary Apply a builder action
// @Description Reduces the posted wizard state with one action. Rejected actions return the unchanged state.
// @Tags report-builder
// @Accept json
// @Produce json
// @Param type path string true "Report type"
// @Param request body DispatchRequest true "State and action"
// @Success 200 {object} DispatchResult
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /api/report-builder/{type}/dispatch [post]
func (ctrl *BuilderController) Dispatch(c *fiber.Ctx) error {
	var req DispatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := ctrl.Service.Dispatch(reportconfig.ReportType(c.Params("type")), req.State, req.Action)
	if err != nil {
		body := fiber.Map{"error": err.Error()}
		if result != nil {
			body["state"] = result.State
			body["visibility"] = result.Visibility
		}
		return c.Status(statusFor(err)).JSON(body)
	}

	return c.JSON(result)
}

// Generate godoc
// @Summary Generate the viewer link
// @Description Encodes filters and field selection into the report viewer URL and closes the wizard
// @Tags report-builder
// @Accept json
// @Produce json
// @Param type path string true "Report type"
// @Param request body GenerateRequest true "Wizard state at the field selection step"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/report-builder/{type}/generate [post]
func (ctrl *BuilderController) Generate(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := ctrl.Service.Dispatch(reportconfig.ReportType(c.Params("type")), req.State, Action{Type: ActionGenerate})
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"url":   result.State.Result.URL,
		"path":  result.State.Result.Path,
		"query": result.State.Result.Query,
		"state": result.State,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reportconfig.ErrUnknownReportType):
		return fiber.StatusNotFound
	case errors.Is(err, ErrReportTypeMismatch), errors.Is(err, ErrUnknownAction):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, reportconfig.ErrUnknownFilter),
		errors.Is(err, reportconfig.ErrInvalidFilter),
		errors.Is(err, reportconfig.ErrInvertedRange),
		errors.Is(err, reportconfig.ErrInvalidOrder),
		errors.Is(err, ErrUnknownSection):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
