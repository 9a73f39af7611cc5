package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"aetherium-server/internal/energy"
	"aetherium-server/internal/middleware"
	"aetherium-server/internal/shared/errors"
	"aetherium-server/internal/shared/response"
)

type EnergyHandler struct {
	service *energy.Service
}

func NewEnergyHandler(service *energy.Service) *EnergyHandler {
	return &EnergyHandler{service: service}
}

func (h *EnergyHandler) Absorb(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "energy_absorb")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req energy.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	absorption, err := h.service.Start(ctx, middleware.UserID(ctx), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, absorption)
}

func (h *EnergyHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "energy_status")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	absorptions, err := h.service.Status(ctx, middleware.UserID(ctx))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, absorptions)
}
