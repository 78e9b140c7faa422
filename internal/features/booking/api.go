package booking

import (
	"go-marketplace/internal/config"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BookingApi struct {
	controller *BookingController
	config     *config.Config
}

func NewBookingApi(controller *BookingController, config *config.Config) *BookingApi {
	return &BookingApi{
		controller: controller,
		config:     config,
	}
}

func (h *BookingApi) Setup(app *fiber.App) {
	group := app.Group("/api/bookings", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.Create)
	group.Get("/", h.controller.List)
	group.Get("/:id", h.controller.Get)
	group.Put("/:id/status", h.controller.UpdateStatus)
}
