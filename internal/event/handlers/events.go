package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"aetherium-server/internal/event"
	"aetherium-server/internal/shared/errors"
	"aetherium-server/internal/shared/response"
)

const defaultEventLimit = 50

type EventHandler struct {
	service  *event.Service
	hub      *event.Hub
	upgrader websocket.Upgrader
}

func NewEventHandler(service *event.Service, hub *event.Hub) *EventHandler {
	return &EventHandler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "event_list")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(w, r, logger, errors.Validation("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.service.ListRecent(ctx, limit)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if events == nil {
		events = []event.WorldEvent{}
	}

	response.Success(w, http.StatusOK, events)
}

// Stream upgrades the connection and pushes world events as they are emitted.
// The read pump only services close frames; clients do not send data.
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "event_stream")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.hub.Register(conn)
	logger.Debug("websocket client connected", "remote_addr", conn.RemoteAddr().String())

	go func() {
		defer func() {
			h.hub.Unregister(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
