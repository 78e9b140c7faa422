package professional

import (
	"errors"
	"strconv"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfessionalController struct {
	service ProfessionalService
}

func NewProfessionalController(service ProfessionalService) *ProfessionalController {
	return &ProfessionalController{
		service: service,
	}
}

// List returns professional profiles
// @Summary List professionals
// @Tags Professionals
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Router /api/professionals [get]
func (c *ProfessionalController) List(ctx *fiber.Ctx) error {
	page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(ctx.Query("limit", "10"), 10, 64)

	items, total, err := c.service.ListProfiles(ctx.Context(), page, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"items":      items,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Get returns one professional profile
// @Summary Get professional
// @Tags Professionals
// @Produce json
// @Param id path string true "Professional ID"
// @Success 200 {object} Professional
// @Failure 404 {object} map[string]string
// @Router /api/professionals/{id} [get]
func (c *ProfessionalController) Get(ctx *fiber.Ctx) error {
	p, err := c.service.GetProfile(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return professionalError(ctx, err)
	}
	return ctx.JSON(p)
}

// Me returns the caller's own professional profile
// @Summary Get own professional profile
// @Tags Professionals
// @Produce json
// @Success 200 {object} Professional
// @Failure 404 {object} map[string]string
// @Router /api/professionals/me [get]
func (c *ProfessionalController) Me(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	p, err := c.service.GetProfileByOwner(ctx.Context(), userID)
	if err != nil {
		return professionalError(ctx, err)
	}
	return ctx.JSON(p)
}

// Create creates a professional profile (admin)
// @Summary Create professional
// @Tags Professionals
// @Accept json
// @Produce json
// @Param body body UpsertProfileRequest true "Profile"
// @Success 201 {object} Professional
// @Failure 400 {object} map[string]string
// @Router /api/professionals [post]
func (c *ProfessionalController) Create(ctx *fiber.Ctx) error {
	var req UpsertProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := c.service.CreateProfile(ctx.Context(), req)
	if err != nil {
		return professionalError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(p)
}

// Update modifies a profile owned by the caller (or any profile, for admins)
// @Summary Update professional
// @Tags Professionals
// @Accept json
// @Produce json
// @Param id path string true "Professional ID"
// @Param body body UpsertProfileRequest true "Profile fields"
// @Success 200 {object} Professional
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/professionals/{id} [put]
func (c *ProfessionalController) Update(ctx *fiber.Ctx) error {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	role, _ := models.ParseRole(claims.Role)

	var req UpsertProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := c.service.UpdateProfile(ctx.Context(), ctx.Params("id"), actorID, role, req)
	if err != nil {
		return professionalError(ctx, err)
	}
	return ctx.JSON(p)
}

// Delete removes a professional profile (admin)
// @Summary Delete professional
// @Tags Professionals
// @Produce json
// @Param id path string true "Professional ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/professionals/{id} [delete]
func (c *ProfessionalController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteProfile(ctx.Context(), ctx.Params("id")); err != nil {
		return professionalError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

func professionalError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional not found"})
	case errors.Is(err, ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
