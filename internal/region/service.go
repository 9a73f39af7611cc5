package region

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"aetherium-server/internal/shared/redis"
)

const (
	regionsCacheKey = "regions:all"
	regionsCacheTTL = 5 * time.Minute
)

// Service reads the static region graph. Region records never change after
// seeding, so the full list is cached in Redis when a client is available.
type Service struct {
	repo   *Repository
	cache  *redis.Client
	logger *slog.Logger
}

func NewService(repo *Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *Service) ListRegions(ctx context.Context) ([]Region, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, regionsCacheKey).Bytes()
		if err == nil {
			var regions []Region
			if err := json.Unmarshal(cached, &regions); err == nil {
				return regions, nil
			}
			s.logger.Warn("Discarding malformed region cache entry", "error", err)
		}
	}

	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(regions); err == nil {
			if err := s.cache.Set(ctx, regionsCacheKey, data, regionsCacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache region list", "error", err)
			}
		}
	}

	return regions, nil
}

func (s *Service) GetRegion(ctx context.Context, id string) (*Region, error) {
	return s.repo.GetRegion(ctx, id)
}
