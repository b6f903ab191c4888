package api

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"

	"github.com/knog12/mafia-final/internal/core"
)

// conn wraps a websocket with a write lock; gorilla sockets allow only one
// concurrent writer.
type conn struct {
	mu   sync.Mutex
	sock *websocket.Conn
}

func (c *conn) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock.WriteMessage(websocket.TextMessage, payload)
}

// Hub tracks live player connections and implements core.Broadcaster over
// them. A send to a player with no live connection is a silent no-op.
type Hub struct {
	mu    sync.Mutex
	conns map[uuid.UUID]*conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[uuid.UUID]*conn)}
}

func (h *Hub) Register(playerID uuid.UUID, sock *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[playerID] = &conn{sock: sock}
}

func (h *Hub) Unregister(playerID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, playerID)
}

func (h *Hub) SendTo(playerID uuid.UUID, e core.Event) {
	h.mu.Lock()
	c, ok := h.conns[playerID]
	h.mu.Unlock()
	if !ok {
		return
	}

	payload, err := json.Marshal(e)
	if err != nil {
		log.Err(err).Str("event", e.Type).Msg("Failed to marshal event")
		return
	}
	if err := c.write(payload); err != nil {
		log.Warn().Str("player", playerID.String()).Str("event", e.Type).Msg("Dropped event")
	}
}

func (h *Hub) SendToAll(playerIDs []uuid.UUID, e core.Event) {
	iter.ForEach(playerIDs, func(id *uuid.UUID) {
		h.SendTo(*id, e)
	})
}
