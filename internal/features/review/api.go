package review

import (
	"go-marketplace/internal/config"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReviewApi struct {
	controller *ReviewController
	config     *config.Config
}

func NewReviewApi(controller *ReviewController, config *config.Config) *ReviewApi {
	return &ReviewApi{
		controller: controller,
		config:     config,
	}
}

func (h *ReviewApi) Setup(app *fiber.App) {
	app.Get("/api/professionals/:id/reviews", h.controller.ListForProfessional)

	group := app.Group("/api/reviews", middleware.AuthMiddleware(h.config.SkipAuth))
	group.Post("/", h.controller.Create)
	group.Delete("/:id", h.controller.Delete)
}
