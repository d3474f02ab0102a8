package assistance

import (
	"errors"

	"go-crossroads/internal/connectors"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AssistanceController struct {
	Service AssistanceService
}

func NewAssistanceController(service AssistanceService) *AssistanceController {
	return &AssistanceController{
		Service: service,
	}
}

type ReduceRequest struct {
	Form   AssistanceRequestForm `json:"form"`
	Action FormAction            `json:"action"`
}

// Reduce godoc
// @Summary Apply a form edit
// @Description Applies one field edit and returns the form with its current validation messages
// @Tags assistance
// @Accept json
// @Produce json
// @Param request body ReduceRequest true "Form and edit"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/assistance-requests/reduce [post]
func (ctrl *AssistanceController) Reduce(c *fiber.Ctx) error {
	var req ReduceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	form, err := Reduce(req.Form, req.Action)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"form":  req.Form,
		})
	}

	errs := ctrl.Service.Validate(form)
	return c.JSON(fiber.Map{
		"form":   form,
		"errors": errs,
		"valid":  errs.Ok(),
	})
}

// Validate godoc
// @Summary Validate an assistance request
// @Tags assistance
// @Accept json
// @Produce json
// @Param form body AssistanceRequestForm true "Form"
// @Success 200 {object} map[string]interface{}
// @Router /api/assistance-requests/validate [post]
func (ctrl *AssistanceController) Validate(c *fiber.Ctx) error {
	var form AssistanceRequestForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	errs := ctrl.Service.Validate(form)
	return c.JSON(fiber.Map{
		"errors": errs,
		"valid":  errs.Ok(),
	})
}

// Create godoc
// @Summary Create an assistance request
// @Description Validates the form and forwards it to the case-management API
// @Tags assistance
// @Accept json
// @Produce json
// @Param form body AssistanceRequestForm true "Form"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/assistance-requests [post]
func (ctrl *AssistanceController) Create(c *fiber.Ctx) error {
	var form AssistanceRequestForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	created, errs, err := ctrl.Service.Submit(c.UserContext(), middleware.SessionFrom(c), form)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidForm):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  err.Error(),
				"errors": errs,
			})
		case errors.Is(err, connectors.ErrUpstreamUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":     "Failed to create assistance request",
				"retryable": true,
			})
		case errors.Is(err, connectors.ErrUpstreamRejected):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":     err.Error(),
				"retryable": false,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Assistance request created successfully",
		"data":    created,
	})
}
