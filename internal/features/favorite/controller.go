package favorite

import (
	"errors"
	"strconv"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FavoriteController struct {
	service FavoriteService
}

func NewFavoriteController(service FavoriteService) *FavoriteController {
	return &FavoriteController{
		service: service,
	}
}

// Add marks a professional as a favorite of the caller
// @Summary Add favorite
// @Tags Favorites
// @Produce json
// @Param professionalId path string true "Professional ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/favorites/{professionalId} [put]
func (c *FavoriteController) Add(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	if err := c.service.AddFavorite(ctx.Context(), userID, ctx.Params("professionalId")); err != nil {
		return favoriteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// Remove drops a professional from the caller's favorites
// @Summary Remove favorite
// @Tags Favorites
// @Produce json
// @Param professionalId path string true "Professional ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/favorites/{professionalId} [delete]
func (c *FavoriteController) Remove(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	if err := c.service.RemoveFavorite(ctx.Context(), userID, ctx.Params("professionalId")); err != nil {
		return favoriteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// List returns the caller's favorites
// @Summary List favorites
// @Tags Favorites
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Router /api/favorites [get]
func (c *FavoriteController) List(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(ctx.Query("limit", "10"), 10, 64)

	items, total, err := c.service.ListFavorites(ctx.Context(), userID, page, limit)
	if err != nil {
		return favoriteError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"items":      items,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Check reports whether a professional is among the caller's favorites
// @Summary Check favorite
// @Tags Favorites
// @Produce json
// @Param professionalId path string true "Professional ID"
// @Success 200 {object} map[string]bool
// @Router /api/favorites/{professionalId} [get]
func (c *FavoriteController) Check(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	favorite, err := c.service.IsFavorite(ctx.Context(), userID, ctx.Params("professionalId"))
	if err != nil {
		return favoriteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"favorite": favorite})
}

func callerID(ctx *fiber.Ctx) (primitive.ObjectID, error) {
	claims := middleware.Claims(ctx)
	if claims == nil {
		return primitive.NilObjectID, errors.New("missing claims")
	}
	return primitive.ObjectIDFromHex(claims.UserID)
}

func favoriteError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
