package world

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"aetherium-server/internal/entity"
	"aetherium-server/internal/region"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedData []byte

type seedFile struct {
	Regions  []seedRegion `yaml:"regions"`
	Entities []seedEntity `yaml:"entities"`
}

type seedRegion struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	NameRu           string   `yaml:"name_ru"`
	Biome            string   `yaml:"biome"`
	Description      string   `yaml:"description"`
	DescriptionRu    string   `yaml:"description_ru"`
	MapX             float64  `yaml:"map_x"`
	MapY             float64  `yaml:"map_y"`
	Width            float64  `yaml:"width"`
	Height           float64  `yaml:"height"`
	Color            string   `yaml:"color"`
	ConnectedRegions []string `yaml:"connected_regions"`
	HazardLevel      int      `yaml:"hazard_level"`
	EnergyType       string   `yaml:"energy_type"`
}

type seedEntity struct {
	Name       string                 `yaml:"name"`
	Type       string                 `yaml:"type"`
	RegionID   string                 `yaml:"region_id"`
	PosX       float64                `yaml:"pos_x"`
	PosY       float64                `yaml:"pos_y"`
	Mass       float64                `yaml:"mass"`
	Health     int                    `yaml:"health"`
	State      string                 `yaml:"state"`
	Properties map[string]interface{} `yaml:"properties"`
}

// ParseSeed decodes the embedded world seed data.
func ParseSeed() ([]region.Region, []entity.Entity, error) {
	var file seedFile
	if err := yaml.Unmarshal(seedData, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse world seed: %w", err)
	}

	regions := make([]region.Region, 0, len(file.Regions))
	for _, sr := range file.Regions {
		regions = append(regions, region.Region{
			ID:               sr.ID,
			Name:             sr.Name,
			NameRu:           sr.NameRu,
			Biome:            sr.Biome,
			Description:      sr.Description,
			DescriptionRu:    sr.DescriptionRu,
			MapX:             sr.MapX,
			MapY:             sr.MapY,
			Width:            sr.Width,
			Height:           sr.Height,
			Color:            sr.Color,
			ConnectedRegions: sr.ConnectedRegions,
			HazardLevel:      sr.HazardLevel,
			EnergyType:       region.EnergyType(sr.EnergyType),
		})
	}

	entities := make([]entity.Entity, 0, len(file.Entities))
	for _, se := range file.Entities {
		entities = append(entities, entity.Entity{
			Name:       se.Name,
			Type:       entity.EntityType(se.Type),
			RegionID:   se.RegionID,
			PosX:       se.PosX,
			PosY:       se.PosY,
			Mass:       se.Mass,
			Health:     se.Health,
			State:      se.State,
			Properties: se.Properties,
		})
	}

	return regions, entities, nil
}

// Seeder populates the static world data on first startup.
type Seeder struct {
	regions  *region.Repository
	entities *entity.Repository
	logger   *slog.Logger
}

func NewSeeder(regions *region.Repository, entities *entity.Repository, logger *slog.Logger) *Seeder {
	return &Seeder{
		regions:  regions,
		entities: entities,
		logger:   logger,
	}
}

// Run seeds regions and entities unless regions already exist.
func (s *Seeder) Run(ctx context.Context) error {
	logger := s.logger.With("component", "world_seeder")

	count, err := s.regions.CountRegions(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing regions: %w", err)
	}
	if count > 0 {
		logger.Info("World data already exists, skipping seed", "regions", count)
		return nil
	}

	regions, entities, err := ParseSeed()
	if err != nil {
		return err
	}

	logger.Info("Seeding world regions", "count", len(regions))
	for i := range regions {
		if err := s.regions.CreateRegion(ctx, &regions[i]); err != nil {
			return fmt.Errorf("failed to seed region %s: %w", regions[i].ID, err)
		}
	}

	logger.Info("Seeding world entities", "count", len(entities))
	for i := range entities {
		if err := s.entities.Create(ctx, &entities[i]); err != nil {
			return fmt.Errorf("failed to seed entity %s: %w", entities[i].Name, err)
		}
	}

	logger.Info("World data seeded successfully")
	return nil
}
