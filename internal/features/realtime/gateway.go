package realtime

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Gateway owns the connection registry. It is the only component that
// mutates it; everything else holds a Gateway reference and asks it to push.
type Gateway struct {
	registry *Registry
	log      *zap.Logger
}

func NewGateway(registry *Registry, log *zap.Logger) *Gateway {
	return &Gateway{
		registry: registry,
		log:      log,
	}
}

// PushToUser delivers the event to the user's live connection if one exists.
// Returns false when the user is offline or the write failed; never errors.
func (g *Gateway) PushToUser(userID string, event string, payload interface{}) bool {
	client, ok := g.registry.Get(userID)
	if !ok {
		return false
	}

	if err := client.Send(Event{Event: event, Data: payload}); err != nil {
		g.log.Warn("live push failed, dropping connection",
			zap.String("userId", userID), zap.Error(err))
		g.dropClient(client)
		return false
	}
	return true
}

// Broadcast delivers the event to every registered connection.
func (g *Gateway) Broadcast(event string, payload interface{}) {
	for _, client := range g.registry.All() {
		if err := client.Send(Event{Event: event, Data: payload}); err != nil {
			g.dropClient(client)
		}
	}
}

// broadcastExcept sends to all registered connections except one handle.
func (g *Gateway) broadcastExcept(exceptID string, ev Event) {
	for _, client := range g.registry.All() {
		if client.ID == exceptID {
			continue
		}
		if err := client.Send(ev); err != nil {
			g.dropClient(client)
		}
	}
}

func (g *Gateway) dropClient(c *Client) {
	if g.registry.Remove(c) {
		g.broadcastExcept(c.ID, Event{
			Event: EventUserOffline,
			Data:  map[string]string{"userId": c.UserID},
		})
	}
	c.Close()
}

// inboundEvent is a client-originated relay message. These are ephemeral:
// forwarded to everyone else, never persisted.
type inboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// HandleConnection runs the read loop for one authenticated connection.
// The auth middleware has already validated the handshake token.
func (g *Gateway) HandleConnection(conn *websocket.Conn) {
	userID, _ := conn.Locals("userID").(string)
	if userID == "" {
		_ = conn.Close()
		return
	}

	client := NewClient(userID, conn)

	if displaced := g.registry.Register(client); displaced != nil {
		displaced.Close()
	}

	g.log.Info("websocket connected", zap.String("userId", userID))
	g.broadcastExcept(client.ID, Event{
		Event: EventUserOnline,
		Data:  map[string]string{"userId": userID},
	})

	defer func() {
		if g.registry.Remove(client) {
			g.broadcastExcept(client.ID, Event{
				Event: EventUserOffline,
				Data:  map[string]string{"userId": userID},
			})
		}
		client.Close()
		g.log.Info("websocket disconnected", zap.String("userId", userID))
	}()

	for {
		var in inboundEvent
		if err := conn.ReadJSON(&in); err != nil {
			break
		}

		switch in.Event {
		case EventStatusUpdated, EventUserTyping, EventBookingUpdated:
			g.broadcastExcept(client.ID, Event{
				Event: in.Event,
				Data: map[string]interface{}{
					"userId":  userID,
					"payload": in.Data,
				},
			})
		default:
			// Unknown client events are ignored
		}
	}
}
