package game

import (
	"sync"

	"github.com/rs/zerolog"
)

// Conn is the router's view of a live connection: a stable identity and a
// non-blocking send. Send reports false when the message was dropped.
type Conn interface {
	ID() string
	Send(data []byte) bool
}

// Hub tracks every live connection for global fanout. It holds no room
// knowledge; the router derives room fanout sets from the registry.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		conns: make(map[string]Conn),
		log:   log.With().Str("component", "hub").Logger(),
	}
}

func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()
	h.log.Debug().Str("conn", c.ID()).Msg("connection registered")
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
	h.log.Debug().Str("conn", id).Msg("connection unregistered")
}

func (h *Hub) Get(id string) (Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[id]
	return c, ok
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Snapshot returns the current connections. Writes happen on the copy so no
// hub lock is held across socket I/O.
func (h *Hub) Snapshot() []Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	return conns
}

// Broadcast pushes data to every live connection, fire and forget.
func (h *Hub) Broadcast(data []byte) {
	for _, c := range h.Snapshot() {
		c.Send(data)
	}
}
