package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"aetherium-server/internal/metaphysics"
	"aetherium-server/internal/scheduler"
	"aetherium-server/internal/shared/errors"
	"aetherium-server/internal/shared/response"
)

type MetaphysicsHandler struct {
	service *metaphysics.Service
	loop    *scheduler.Loop
}

func NewMetaphysicsHandler(service *metaphysics.Service, loop *scheduler.Loop) *MetaphysicsHandler {
	return &MetaphysicsHandler{
		service: service,
		loop:    loop,
	}
}

// State returns one character's metaphysics state (lazily created) or all
// states when no characterId is given.
func (h *MetaphysicsHandler) State(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "metaphysics_state")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	if characterIDStr := r.URL.Query().Get("characterId"); characterIDStr != "" {
		characterID, err := strconv.Atoi(characterIDStr)
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid characterId", err))
			return
		}

		state, err := h.service.GetOrCreateForCharacter(ctx, characterID)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		response.Success(w, http.StatusOK, state)
		return
	}

	states, err := h.service.ListAll(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if states == nil {
		states = []metaphysics.State{}
	}

	response.Success(w, http.StatusOK, states)
}

type tickResponse struct {
	Ran bool `json:"ran"`
}

// Tick triggers one metaphysics step, sharing the loop's single-flight
// guard.
func (h *MetaphysicsHandler) Tick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "metaphysics_tick")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	ran := h.loop.Trigger(ctx)
	response.Success(w, http.StatusOK, tickResponse{Ran: ran})
}

type energizeRequest struct {
	CharacterID int     `json:"character_id"`
	Chakra      string  `json:"chakra"`
	Amount      float64 `json:"amount"`
}

func (h *MetaphysicsHandler) Energize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "metaphysics_energize")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req energizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	state, err := h.service.Energize(ctx, req.CharacterID, req.Chakra, req.Amount)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, state)
}

type karmaRequest struct {
	CharacterID int     `json:"character_id"`
	Action      string  `json:"action"`
	Amount      float64 `json:"amount"`
}

func (h *MetaphysicsHandler) Karma(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "metaphysics_karma")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req karmaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	state, err := h.service.AdjustKarma(ctx, req.CharacterID, req.Action, req.Amount)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, state)
}

type evolveRequest struct {
	CharacterID int `json:"character_id"`
}

func (h *MetaphysicsHandler) Evolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "metaphysics_evolve")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req evolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	result, err := h.service.CheckEvolution(ctx, req.CharacterID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}

type applyEffectRequest struct {
	CharacterID int     `json:"character_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Power       float64 `json:"power"`
	Duration    int     `json:"duration"`
}

// Effects serves GET (list active effects) and POST (apply a new effect).
func (h *MetaphysicsHandler) Effects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "metaphysics_effects")

	switch r.Method {
	case http.MethodGet:
		characterID, err := strconv.Atoi(r.URL.Query().Get("characterId"))
		if err != nil {
			response.Error(w, r, logger, errors.Validation("characterId is required"))
			return
		}

		effects, err := h.service.GetEffects(ctx, characterID)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		response.Success(w, http.StatusOK, effects)

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
		var req applyEffectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
			return
		}

		state, err := h.service.ApplyEffect(ctx, req.CharacterID, metaphysics.ApplyEffectRequest{
			Name:     req.Name,
			Type:     req.Type,
			Power:    req.Power,
			Duration: req.Duration,
		})
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}

		response.Success(w, http.StatusCreated, state)

	default:
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
	}
}
