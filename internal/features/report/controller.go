package report

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	service ReportService
}

func NewReportController(service ReportService) *ReportController {
	return &ReportController{
		service: service,
	}
}

// ExportBookings downloads all bookings as an xlsx file
// @Summary Export bookings
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string
// @Router /api/admin/reports/bookings/export [get]
func (c *ReportController) ExportBookings(ctx *fiber.Ctx) error {
	data, filename, err := c.service.ExportBookings(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}
