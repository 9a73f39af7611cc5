package world

import "testing"

func TestParseSeed(t *testing.T) {
	regions, entities, err := ParseSeed()
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}

	if len(regions) != 7 {
		t.Fatalf("got %d regions, want 7", len(regions))
	}
	if len(entities) != 9 {
		t.Fatalf("got %d entities, want 9", len(entities))
	}

	byID := map[string]int{}
	for i, r := range regions {
		byID[r.ID] = i
	}

	forest := regions[byID["forest_ancient"]]
	if forest.Name != "Ancient Forest" || forest.NameRu == "" {
		t.Errorf("forest names = %q / %q", forest.Name, forest.NameRu)
	}
	if !forest.IsConnectedTo("crystal_cave") {
		t.Error("forest_ancient must connect to crystal_cave")
	}
	if forest.IsConnectedTo("abyss_deep") {
		t.Error("forest_ancient must not connect to abyss_deep")
	}

	// Adjacency is bidirectional in the seed graph.
	for _, r := range regions {
		for _, target := range r.ConnectedRegions {
			j, ok := byID[target]
			if !ok {
				t.Errorf("region %s connects to unknown region %s", r.ID, target)
				continue
			}
			if !regions[j].IsConnectedTo(r.ID) {
				t.Errorf("adjacency %s -> %s is not mirrored", r.ID, target)
			}
		}
	}

	for _, e := range entities {
		if _, ok := byID[e.RegionID]; !ok {
			t.Errorf("entity %q placed in unknown region %q", e.Name, e.RegionID)
		}
		if e.Mass <= 0 {
			t.Errorf("entity %q has non-positive mass %v", e.Name, e.Mass)
		}
	}

	guardian := entities[0]
	if guardian.RegionID != "forest_ancient" || guardian.Health != 200 {
		t.Errorf("first entity = %+v, want forest guardian with 200 health", guardian)
	}
	if guardian.Properties["element"] != "life" {
		t.Errorf("guardian properties = %v", guardian.Properties)
	}
}

func TestSeasonRotation(t *testing.T) {
	if SeasonSpring.Next() != SeasonSummer {
		t.Error("spring must roll to summer")
	}
	if SeasonWinter.Next() != SeasonSpring {
		t.Error("winter must wrap to spring")
	}
	if Season("unknown").Next() != SeasonSpring {
		t.Error("unknown season must reset to spring")
	}
}

func TestDefaultWorldState(t *testing.T) {
	s := DefaultWorldState()

	if s.ID != 1 {
		t.Errorf("ID = %d, want 1 (singleton)", s.ID)
	}
	if s.TimeOfDay != 12 || s.DayNumber != 1 || s.Season != SeasonSpring {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.Weather.Type != WeatherClear || s.Weather.WindSpeed != 2.5 || s.Weather.Temperature != 22 {
		t.Errorf("unexpected default weather: %+v", s.Weather)
	}
}
