package middleware

import (
	"go-marketplace/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware rejects requests whose token does not carry the admin role.
// Must run after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil || claims.Role != string(models.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}
