package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"aetherium-server/internal/entity"
	"aetherium-server/internal/scheduler"
	"aetherium-server/internal/shared/errors"
	"aetherium-server/internal/shared/response"
	"aetherium-server/internal/world"
)

type PhysicsHandler struct {
	loop     *scheduler.Loop
	worlds   *world.Repository
	entities *entity.Repository
}

func NewPhysicsHandler(loop *scheduler.Loop, worlds *world.Repository, entities *entity.Repository) *PhysicsHandler {
	return &PhysicsHandler{
		loop:     loop,
		worlds:   worlds,
		entities: entities,
	}
}

type tickResponse struct {
	Ran   bool              `json:"ran"`
	State *world.WorldState `json:"state"`
}

// Tick triggers one physics step. Shares the single-flight guard with the
// scheduled loop, so a tick already in progress makes this a no-op.
func (h *PhysicsHandler) Tick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "physics_tick")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	ran := h.loop.Trigger(ctx)

	state, err := h.worlds.GetOrCreate(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, tickResponse{Ran: ran, State: state})
}

type moveRequest struct {
	EntityID  int     `json:"entity_id"`
	VelocityX float64 `json:"velocity_x"`
	VelocityY float64 `json:"velocity_y"`
}

// Move overrides an entity's velocity; the next tick integrates it.
func (h *PhysicsHandler) Move(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "physics_move")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	if req.EntityID <= 0 {
		response.Error(w, r, logger, errors.Validation("entity_id is required"))
		return
	}

	updated, err := h.entities.SetVelocity(ctx, req.EntityID, req.VelocityX, req.VelocityY)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if updated == nil {
		response.Error(w, r, logger, errors.NotFoundf("entity %d not found", req.EntityID))
		return
	}

	response.Success(w, http.StatusOK, updated)
}
