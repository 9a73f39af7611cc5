package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"aetherium-server/internal/character"
	"aetherium-server/internal/middleware"
	"aetherium-server/internal/shared/errors"
	"aetherium-server/internal/shared/response"
)

type CharacterHandler struct {
	service *character.Service
}

func NewCharacterHandler(service *character.Service) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// Me returns the caller's character.
func (h *CharacterHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "character_me")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	char, err := h.service.GetByUser(ctx, middleware.UserID(ctx))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, char)
}

func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "character_create")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req character.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	char, err := h.service.Create(ctx, middleware.UserID(ctx), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, char)
}

func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "character_update")

	if r.Method != http.MethodPut {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	characterID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid character id", err))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req character.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	char, err := h.service.Update(ctx, middleware.UserID(ctx), characterID, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, char)
}

type travelRequest struct {
	CharacterID    int    `json:"character_id"`
	TargetRegionID string `json:"target_region_id"`
}

func (h *CharacterHandler) Travel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "character_travel")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req travelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	if req.TargetRegionID == "" {
		response.Error(w, r, logger, errors.Validation("target_region_id is required"))
		return
	}

	char, err := h.service.Travel(ctx, req.CharacterID, req.TargetRegionID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, char)
}
