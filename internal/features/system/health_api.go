package system

import (
	"context"
	"time"

	"go-marketplace/internal/database"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	db *database.MongodbDB
}

func NewHealthApi(db *database.MongodbDB) *HealthApi {
	return &HealthApi{
		db: db,
	}
}

// Setup registers the health probe
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.check)
}

// check godoc
// @Summary      Health check
// @Description  Reports service and database availability
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthApi) check(ctx *fiber.Ctx) error {
	dbCtx, cancel := context.WithTimeout(ctx.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK
	if err := h.db.DB.Client().Ping(dbCtx, nil); err != nil {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return ctx.Status(code).JSON(fiber.Map{
		"status": status,
		"time":   time.Now().UTC(),
	})
}
