package professional

import (
	"go-marketplace/internal/config"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProfessionalApi struct {
	controller *ProfessionalController
	config     *config.Config
}

func NewProfessionalApi(controller *ProfessionalController, config *config.Config) *ProfessionalApi {
	return &ProfessionalApi{
		controller: controller,
		config:     config,
	}
}

func (h *ProfessionalApi) Setup(app *fiber.App) {
	group := app.Group("/api/professionals")

	group.Get("/", h.controller.List)
	// "/me" must register before the "/:id" wildcard
	group.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
	group.Get("/:id", h.controller.Get)

	group.Put("/:id", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Update)

	group.Post("/", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware(), h.controller.Create)
	group.Delete("/:id", middleware.AuthMiddleware(h.config.SkipAuth), middleware.AdminMiddleware(), h.controller.Delete)
}
