package realtime

import (
	"go-marketplace/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WebSocketApi struct {
	gateway *Gateway
}

func NewWebSocketApi(gateway *Gateway) *WebSocketApi {
	return &WebSocketApi{
		gateway: gateway,
	}
}

// Setup registers the live-channel endpoint. The handshake requires a valid
// token query parameter; invalid credentials are rejected before the upgrade.
//
// @Summary      WebSocket endpoint
// @Description  Live notification and presence channel; requires ?token=<jwt>
// @Tags         realtime
// @Param        token query string true "Access token"
// @Router       /ws [get]
func (h *WebSocketApi) Setup(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		claims, err := utils.ValidateToken(c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing token",
			})
		}

		c.Locals("userID", claims.UserID)
		return c.Next()
	})

	app.Get("/ws", websocket.New(h.gateway.HandleConnection))
}
