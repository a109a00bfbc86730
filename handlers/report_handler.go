package handlers

import (
	"oficina.app/repositories"
	"oficina.app/services"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service services.IReportService
}

func NewReportHandler(service services.IReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) filter(c *fiber.Ctx) (repositories.ReportFilter, error) {
	from, err := queryTime(c, "from")
	if err != nil {
		return repositories.ReportFilter{}, err
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return repositories.ReportFilter{}, err
	}
	return repositories.ReportFilter{
		From:       from,
		To:         to,
		Status:     c.Query("status"),
		ClientID:   uint(c.QueryInt("client_id")),
		EmployeeID: uint(c.QueryInt("employee_id")),
	}, nil
}

func (h *ReportHandler) Orders(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.service.Orders(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *ReportHandler) Revenue(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.service.Revenue(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) Productivity(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.service.Productivity(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// ExportOrders writes the report file and serves it as a download.
func (h *ReportHandler) ExportOrders(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return respondError(c, err)
	}
	format := services.ExportFormat(c.Query("format", string(services.ExportXLSX)))
	path, err := h.service.ExportOrders(c.UserContext(), filter, format)
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(path)
}

func (h *ReportHandler) ExportProductivity(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return respondError(c, err)
	}
	format := services.ExportFormat(c.Query("format", string(services.ExportXLSX)))
	path, err := h.service.ExportProductivity(c.UserContext(), filter, format)
	if err != nil {
		return respondError(c, err)
	}
	return c.Download(path)
}
