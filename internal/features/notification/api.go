package notification

import (
	"go-marketplace/internal/config"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
	config     *config.Config
}

func NewNotificationApi(controller *NotificationController, config *config.Config) *NotificationApi {
	return &NotificationApi{
		controller: controller,
		config:     config,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.List)
	group.Get("/unread-count", h.controller.GetUnreadCount)
	group.Put("/read-all", h.controller.MarkAllAsRead)
	group.Put("/archive-all-read", h.controller.ArchiveAllRead)
	group.Put("/:id/read", h.controller.MarkAsRead)
	group.Put("/:id/archive", h.controller.Archive)
	group.Delete("/:id", h.controller.Delete)
}
