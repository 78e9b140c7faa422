package favorite

import (
	"go-marketplace/internal/config"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FavoriteApi struct {
	controller *FavoriteController
	config     *config.Config
}

func NewFavoriteApi(controller *FavoriteController, config *config.Config) *FavoriteApi {
	return &FavoriteApi{
		controller: controller,
		config:     config,
	}
}

func (h *FavoriteApi) Setup(app *fiber.App) {
	group := app.Group("/api/favorites", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.List)
	group.Get("/:professionalId", h.controller.Check)
	group.Put("/:professionalId", h.controller.Add)
	group.Delete("/:professionalId", h.controller.Remove)
}
