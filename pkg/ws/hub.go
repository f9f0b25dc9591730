package ws

import (
	"encoding/json"
	"sync"

	"github.com/puzpuzpuz/xsync"
)

// Hub tracks connected clients keyed by user id and pushes server events to
// them. Delivery is best-effort: a client with a full send buffer is dropped.
// The per-user client set is replaced wholesale on every change, so
// SendToUser can iterate a loaded set without holding a lock; mu serializes
// the read-modify-write of the writers only.
type Hub struct {
	mu    sync.Mutex
	users *xsync.MapOf[string, map[*Client]bool]
}

func NewHub() *Hub {
	return &Hub{users: xsync.NewMapOf[map[*Client]bool]()}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	old, _ := h.users.Load(c.UserID)
	next := make(map[*Client]bool, len(old)+1)
	for k := range old {
		next[k] = true
	}

	next[c] = true
	h.users.Store(c.UserID, next)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	old, ok := h.users.Load(c.UserID)
	if !ok {
		return
	}

	if _, ok := old[c]; !ok {
		return
	}

	if len(old) == 1 {
		h.users.Delete(c.UserID)
		return
	}

	next := make(map[*Client]bool, len(old)-1)
	for k := range old {
		if k != c {
			next[k] = true
		}
	}

	h.users.Store(c.UserID, next)
}

// SendToUser marshals the event and pushes it to every connection of the
// user. Users with no connection are silently skipped.
func (h *Hub) SendToUser(userID string, event any) error {
	conns, ok := h.users.Load(userID)
	if !ok {
		return nil
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	for c := range conns {
		select {
		case c.send <- b:
		default:
			h.unregister(c)
			c.conn.Close()
		}
	}

	return nil
}
