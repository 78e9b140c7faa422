package notification

import (
	"errors"
	"strconv"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

func callerID(ctx *fiber.Ctx) (primitive.ObjectID, error) {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return primitive.NilObjectID, errors.New("missing claims")
	}
	return primitive.ObjectIDFromHex(claims.UserID)
}

// List retrieves the caller's notifications, newest first
// @Summary List notifications
// @Description Get a paginated list of notifications for the current user
// @Tags Notifications
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param read query bool false "Filter by read state"
// @Param archived query bool false "Filter by archived state"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(ctx.Query("limit", "10"), 10, 64)

	opts := ListOptions{Page: page, Limit: limit}
	if v := ctx.Query("read"); v != "" {
		b := v == "true"
		opts.Read = &b
	}
	if v := ctx.Query("archived"); v != "" {
		b := v == "true"
		opts.Archived = &b
	}

	items, total, err := c.service.GetUserNotifications(ctx.Context(), userID, opts)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"items":      items,
		"pagination": models.NewPagination(opts.Page, opts.Limit, total),
	})
}

// GetUnreadCount retrieves the unread notification count
// @Summary Get unread count
// @Description Number of unread, unarchived notifications for the current user
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	count, err := c.service.GetUnreadCount(ctx.Context(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"count": count})
}

// MarkAsRead marks one notification as read
// @Summary Mark notification as read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := c.service.MarkAsRead(ctx.Context(), ctx.Params("id"), userID); err != nil {
		return notificationError(ctx, err)
	}

	return ctx.JSON(fiber.Map{"status": "success"})
}

// Archive marks one notification as archived
// @Summary Archive notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/notifications/{id}/archive [put]
func (c *NotificationController) Archive(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := c.service.ArchiveNotification(ctx.Context(), ctx.Params("id"), userID); err != nil {
		return notificationError(ctx, err)
	}

	return ctx.JSON(fiber.Map{"status": "success"})
}

// MarkAllAsRead marks every unread notification as read
// @Summary Mark all as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications/read-all [put]
func (c *NotificationController) MarkAllAsRead(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	modified, err := c.service.MarkAllAsRead(ctx.Context(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"status": "success", "modified": modified})
}

// ArchiveAllRead archives every read, unarchived notification
// @Summary Archive all read notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications/archive-all-read [put]
func (c *NotificationController) ArchiveAllRead(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	modified, err := c.service.ArchiveAllRead(ctx.Context(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"status": "success", "modified": modified})
}

// Delete removes one notification owned by the caller
// @Summary Delete notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/notifications/{id} [delete]
func (c *NotificationController) Delete(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := c.service.DeleteNotification(ctx.Context(), ctx.Params("id"), userID); err != nil {
		return notificationError(ctx, err)
	}

	return ctx.JSON(fiber.Map{"status": "success"})
}

// notificationError maps service errors to HTTP responses. "Not found" also
// covers "not yours" so record existence is never leaked.
func notificationError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	case errors.Is(err, ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
