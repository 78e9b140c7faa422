package review

import (
	"errors"
	"strconv"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewController struct {
	service ReviewService
}

func NewReviewController(service ReviewService) *ReviewController {
	return &ReviewController{
		service: service,
	}
}

// Create posts a review for a completed booking
// @Summary Create review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param body body CreateReviewRequest true "Review"
// @Success 201 {object} Review
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/reviews [post]
func (c *ReviewController) Create(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	customerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req CreateReviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	rev, err := c.service.CreateReview(ctx.Context(), customerID, req)
	if err != nil {
		return reviewError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(rev)
}

// ListForProfessional returns a professional's reviews
// @Summary List reviews for a professional
// @Tags Reviews
// @Produce json
// @Param id path string true "Professional user ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Router /api/professionals/{id}/reviews [get]
func (c *ReviewController) ListForProfessional(ctx *fiber.Ctx) error {
	page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(ctx.Query("limit", "10"), 10, 64)

	items, total, err := c.service.ListForProfessional(ctx.Context(), ctx.Params("id"), page, limit)
	if err != nil {
		return reviewError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"items":      items,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Delete removes a review written by the caller (or any review, for admins)
// @Summary Delete review
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/reviews/{id} [delete]
func (c *ReviewController) Delete(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	role, _ := models.ParseRole(claims.Role)

	if err := c.service.DeleteReview(ctx.Context(), ctx.Params("id"), actorID, role); err != nil {
		return reviewError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

func reviewError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, ErrAlreadyReviewed):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Booking already reviewed"})
	case errors.Is(err, ErrNotCompleted):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only completed bookings can be reviewed"})
	case errors.Is(err, ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
