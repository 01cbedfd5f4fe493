package cache

import (
	"context"
	"route-optimizer-service/internal/domain"
	"time"
)

// A persisted cache entry. CachedAt drives TTL expiry; recency order is
// an in-memory concern and is rebuilt from CachedAt on load.
type Entry struct {
	Coords   domain.Coordinates `json:"coords"`
	CachedAt time.Time          `json:"cached_at"`
}

// Store persists the full cache state as one key-value blob.
//
// Load returns an empty map (not an error) when no prior state exists.
// Save replaces any previously persisted state wholesale.
type Store interface {
	Load(ctx context.Context) (map[string]Entry, error)
	Save(ctx context.Context, entries map[string]Entry) error
}
