package event

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// Hub fans appended world events out to websocket subscribers. Slow or
// broken connections are dropped rather than allowed to block the emitter.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
	}
}

// Register adds a subscriber connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("Event feed subscriber registered", "subscribers", count)
}

// Unregister removes a subscriber and closes its connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	count := len(h.clients)
	h.mu.Unlock()

	_ = conn.Close()
	h.logger.Debug("Event feed subscriber unregistered", "subscribers", count)
}

// Broadcast sends an event to every subscriber.
func (h *Hub) Broadcast(evt WorldEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("Failed to marshal event for broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("Dropping event feed subscriber", "error", err)
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
