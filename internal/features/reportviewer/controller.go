package reportviewer

import (
	"errors"
	"fmt"
	"net/url"

	"go-crossroads/internal/connectors"
	"go-crossroads/internal/features/reportconfig"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ViewerController struct {
	Service ViewerService
}

func NewViewerController(service ViewerService) *ViewerController {
	return &ViewerController{
		Service: service,
	}
}

// View godoc
// @Summary View a report
// @Description Decodes the builder's query string, fetches the report upstream and returns the gated, normalized result
// @Tags reports
// @Produce json
// @Param type path string true "Report type"
// @Success 200 {object} RenderedReport
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/reports/{type}/view [get]
func (ctrl *ViewerController) View(c *fiber.Ctx) error {
	report, err := ctrl.Service.View(c.UserContext(), middleware.SessionFrom(c), reportType(c), queryValues(c))
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(report)
}

// Print godoc
// @Summary Printable report
// @Description Same report as the view endpoint rendered as print-formatted HTML
// @Tags reports
// @Produce html
// @Param type path string true "Report type"
// @Success 200 {string} string
// @Failure 502 {object} map[string]interface{}
// @Router /api/reports/{type}/print [get]
func (ctrl *ViewerController) Print(c *fiber.Ctx) error {
	page, err := ctrl.Service.Print(c.UserContext(), middleware.SessionFrom(c), reportType(c), queryValues(c))
	if err != nil {
		return failure(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

// Export godoc
// @Summary Export a report
// @Description Downloads the enabled record columns as CSV or XLSX
// @Tags reports
// @Produce octet-stream
// @Param type path string true "Report type"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/reports/{type}/export [get]
func (ctrl *ViewerController) Export(c *fiber.Ctx) error {
	format := ExportFormat(c.Query("format", string(ExportCSV)))

	query := queryValues(c)
	query.Del("format")

	file, err := ctrl.Service.Export(c.UserContext(), middleware.SessionFrom(c), reportType(c), query, format)
	if err != nil {
		return failure(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", file.Filename))
	return c.Send(file.Data)
}

func reportType(c *fiber.Ctx) reportconfig.ReportType {
	return reportconfig.ReportType(c.Params("type"))
}

// queryValues parses the raw query string so repeated and percent-encoded
// blob parameters survive untouched.
func queryValues(c *fiber.Ctx) url.Values {
	// ParseQuery keeps every pair it could read; bad pairs are treated as absent
	values, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	return values
}

func failure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, reportconfig.ErrUnknownReportType):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, ErrInvalidDataFormat):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":     ErrInvalidDataFormat.Error(),
			"retryable": true,
		})
	case errors.Is(err, connectors.ErrUpstreamUnavailable), errors.Is(err, connectors.ErrUpstreamRejected):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":     "Failed to load report",
			"retryable": true,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
