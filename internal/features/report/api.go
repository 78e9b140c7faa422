package report

import (
	"go-marketplace/internal/config"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	controller *ReportController
	config     *config.Config
}

func NewReportApi(controller *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		controller: controller,
		config:     config,
	}
}

func (h *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/admin/reports",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.AdminMiddleware(),
	)

	group.Get("/bookings/export", h.controller.ExportBookings)
}
