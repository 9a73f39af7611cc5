package handlers

import (
	"log/slog"
	"net/http"

	"aetherium-server/internal/entity"
	"aetherium-server/internal/region"
	"aetherium-server/internal/shared/errors"
	"aetherium-server/internal/shared/response"
	"aetherium-server/internal/world"
)

type WorldHandler struct {
	worlds   *world.Repository
	regions  *region.Service
	entities *entity.Repository
}

func NewWorldHandler(worlds *world.Repository, regions *region.Service, entities *entity.Repository) *WorldHandler {
	return &WorldHandler{
		worlds:   worlds,
		regions:  regions,
		entities: entities,
	}
}

func (h *WorldHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "world_state")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	state, err := h.worlds.GetOrCreate(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, state)
}

func (h *WorldHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "world_regions")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	regions, err := h.regions.ListRegions(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if regions == nil {
		regions = []region.Region{}
	}

	response.Success(w, http.StatusOK, regions)
}

func (h *WorldHandler) GetEntities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "world_entities")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var entities []entity.Entity
	var err error

	if regionID := r.URL.Query().Get("regionId"); regionID != "" {
		entities, err = h.entities.ListByRegion(ctx, regionID)
	} else {
		entities, err = h.entities.List(ctx)
	}
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if entities == nil {
		entities = []entity.Entity{}
	}

	response.Success(w, http.StatusOK, entities)
}
