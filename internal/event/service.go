package event

import (
	"context"
	"log/slog"
	"time"
)

// Service appends world events and broadcasts them to the live feed.
type Service struct {
	repo   *Repository
	hub    *Hub
	logger *slog.Logger
}

func NewService(repo *Repository, hub *Hub, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hub:    hub,
		logger: logger,
	}
}

// Emit records an event. Failures to persist are logged and do not fail the
// emitting operation; the event is still broadcast to live subscribers.
func (s *Service) Emit(ctx context.Context, evt WorldEvent) {
	if err := s.repo.Append(ctx, &evt); err != nil {
		s.logger.Error("Failed to persist world event", "type", evt.Type, "error", err)
		if evt.CreatedAt.IsZero() {
			evt.CreatedAt = time.Now()
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(evt)
	}
}

// ListRecent returns the most recent events, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]WorldEvent, error) {
	return s.repo.ListRecent(ctx, limit)
}
