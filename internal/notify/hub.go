// Package notify pushes best-effort dashboard refresh events over
// websockets. Delivery is not guaranteed; clients that miss an event
// converge via their periodic poll.
package notify

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventPaymentsChanged = "payments.changed"
)

// Event is one push notification. ClubID scopes the event to a club's
// dashboard subscribers.
type Event struct {
	Type   string `json:"type"`
	ClubID uint   `json:"club_id"`
}

// Publisher is the write side of the hub, injected into controllers.
type Publisher interface {
	Publish(event Event)
}

// Hub fans events out to connected websocket clients. Slow clients are
// dropped rather than blocking publishers.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
}

type client struct {
	conn   *websocket.Conn
	clubID uint
	send   chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is same-platform; origin checks happen at the
			// CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Publish sends the event to every subscriber of the event's club. Never
// blocks; events to saturated clients are dropped.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.clubID != 0 && c.clubID != event.ClubID {
			continue
		}
		select {
		case c.send <- event:
		default:
			slog.Debug("dropping event for slow websocket client", "type", event.Type, "club_id", event.ClubID)
		}
	}
}

// ServeWS upgrades the request to a websocket subscription. An optional
// club_id query param scopes the subscription to one club.
func (h *Hub) ServeWS(ctx *gin.Context) {
	var clubID uint
	if v := ctx.Query("club_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid club_id"})
			return
		}
		clubID = uint(parsed)
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{
		conn:   conn,
		clubID: clubID,
		send:   make(chan Event, 16),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
}

// readLoop drains the connection so pings/closes are processed, and removes
// the client once the connection dies.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		close(c.send)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
