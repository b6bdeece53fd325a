// Package hub fans support events out to connected admin/staff clients.
// Delivery is at-most-once: a client that is not connected misses the event
// and recovers it from the notification list on its next poll.
package hub

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"
)

type frame struct {
	Type    string `json:"type"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

func New() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// Handle upgrades the request and parks it until the client disconnects.
// Role gating happens in the router; by the time we get here the caller is
// admin or staff.
func (h *Hub) Handle(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return nil // Accept already wrote the handshake failure
	}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	log.Printf("[hub] client connected (%d total)", n)

	ctx := c.Request().Context()
	// drain until close so we notice the disconnect
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close(websocket.StatusNormalClosure, "closed")
	return nil
}

// Broadcast sends the event to every connected client, dropping the ones
// that fail. No delivery guarantee, no replay.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	f := frame{Type: "event", Event: event, Payload: payload}
	for _, conn := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := wsjson.Write(ctx, conn, f); err != nil {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			conn.Close(websocket.StatusAbnormalClosure, "write failed")
		}
		cancel()
	}
}

// Count is for tests and health reporting.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
