package booking

import (
	"errors"
	"strconv"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingController struct {
	service BookingService
}

func NewBookingController(service BookingService) *BookingController {
	return &BookingController{
		service: service,
	}
}

func actorFrom(ctx *fiber.Ctx) (Actor, error) {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return Actor{}, errors.New("missing claims")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return Actor{}, err
	}
	role, ok := models.ParseRole(claims.Role)
	if !ok {
		role = models.RoleCustomer
	}
	return Actor{ID: id, Role: role}, nil
}

// Create creates a booking request
// @Summary Create booking
// @Description Customer creates a pending booking for a professional
// @Tags Bookings
// @Accept json
// @Produce json
// @Param body body CreateBookingRequest true "Booking"
// @Success 201 {object} Booking
// @Failure 400 {object} map[string]string
// @Router /api/bookings [post]
func (c *BookingController) Create(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req CreateBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	b, err := c.service.CreateBooking(ctx.Context(), actor.ID, req)
	if err != nil {
		return bookingError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(b)
}

// List returns the caller's bookings
// @Summary List bookings
// @Description Customers see requested bookings, professionals see assigned ones
// @Tags Bookings
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Router /api/bookings [get]
func (c *BookingController) List(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(ctx.Query("limit", "10"), 10, 64)

	items, total, err := c.service.ListBookings(ctx.Context(), actor, page, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"items":      items,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Get returns one booking the caller participates in
// @Summary Get booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} Booking
// @Failure 404 {object} map[string]string
// @Router /api/bookings/{id} [get]
func (c *BookingController) Get(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	b, err := c.service.GetBooking(ctx.Context(), ctx.Params("id"), actor)
	if err != nil {
		return bookingError(ctx, err)
	}

	return ctx.JSON(b)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus applies a booking lifecycle transition
// @Summary Update booking status
// @Description Applies the state machine; 400 invalid status, 403 wrong actor, 404 absent, 409 lost race
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param body body updateStatusRequest true "Target status"
// @Success 200 {object} Booking
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/bookings/{id}/status [put]
func (c *BookingController) UpdateStatus(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req updateStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	b, err := c.service.UpdateStatus(ctx.Context(), ctx.Params("id"), actor, req.Status)
	if err != nil {
		return bookingError(ctx, err)
	}

	return ctx.JSON(b)
}

func bookingError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	case errors.Is(err, ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrConflict):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
