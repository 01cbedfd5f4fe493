package fleet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"route-optimizer-service/internal/domain"
	"strings"
)

type vehicleSeed struct {
	ID       int    `json:"id"`
	Capacity int    `json:"capacity"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
}

// Default returns the fleet used when no configuration file exists:
// a single vehicle sized for a typical delivery day.
func Default() []domain.Vehicle {
	return []domain.Vehicle{
		{ID: 1, Capacity: 20, Color: "blue", Icon: "truck"},
	}
}

// LoadFromJSON reads vehicle configuration from a JSON file. A missing
// file yields the default fleet; a present but invalid file is an
// error, since silently ignoring a broken fleet config would change
// routing capacity unnoticed.
func LoadFromJSON(path string) ([]domain.Vehicle, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load fleet: read %q: %w", path, err)
	}

	var seeds []vehicleSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("load fleet: parse json: %w", err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("load fleet: %q contains no vehicles", path)
	}

	seen := make(map[int]struct{}, len(seeds))
	vehicles := make([]domain.Vehicle, 0, len(seeds))
	for i, s := range seeds {
		if s.ID <= 0 {
			return nil, fmt.Errorf("load fleet: invalid vehicle id at index %d: %d", i+1, s.ID)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("load fleet: duplicate vehicle id %d", s.ID)
		}
		seen[s.ID] = struct{}{}

		if s.Capacity <= 0 {
			return nil, fmt.Errorf("load fleet: vehicle %d capacity must be positive", s.ID)
		}

		vehicles = append(vehicles, domain.Vehicle{
			ID:       s.ID,
			Capacity: s.Capacity,
			Color:    strings.TrimSpace(s.Color),
			Icon:     strings.TrimSpace(s.Icon),
		})
	}

	return vehicles, nil
}
