package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

const (
	EventNewNotification = "newNotification"
	EventUserOnline      = "userOnline"
	EventUserOffline     = "userOffline"
	EventStatusUpdated   = "statusUpdated"
	EventUserTyping      = "userTyping"
	EventBookingUpdated  = "bookingUpdated"
)

// wsConn is the subset of the websocket connection the registry needs.
// Tests substitute a fake.
type wsConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one live connection handle. A user has at most one.
type Client struct {
	ID     string
	UserID string

	mu   sync.Mutex
	conn wsConn
}

func NewClient(userID string, conn wsConn) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		conn:   conn,
	}
}

// Send writes one event to the connection. Writes are serialized per client.
func (c *Client) Send(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(ev)
}

func (c *Client) Close() {
	_ = c.conn.Close()
}

// Registry maps a user id to its single active connection handle.
// It is in-memory only; entries do not survive a restart.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

// Register inserts the client, displacing any previous handle for the same
// user. The displaced client is returned so the caller can close it.
func (r *Registry) Register(c *Client) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.clients[c.UserID]
	r.clients[c.UserID] = c
	return old
}

// Remove deletes the entry only if it still points at this handle. A user
// may have reconnected with a new handle before the old disconnect fired.
func (r *Registry) Remove(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.clients[c.UserID]; ok && existing.ID == c.ID {
		delete(r.clients, c.UserID)
		return true
	}
	return false
}

func (r *Registry) Get(userID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[userID]
	return c, ok
}

func (r *Registry) IsOnline(userID string) bool {
	_, ok := r.Get(userID)
	return ok
}

// All returns a snapshot of the registered clients.
func (r *Registry) All() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}
