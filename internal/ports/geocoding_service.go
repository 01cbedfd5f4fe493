package ports

import (
	"context"
	"errors"
	"route-optimizer-service/internal/domain"
)

// ErrNotFound reports that the geocoding provider returned no results
// for a query. Callers distinguish it from transport/auth failures with
// errors.Is.
var ErrNotFound = errors.New("geocoding: no results")

// Contract for resolving a free-form address to coordinates.
//
// Implementations apply their own result biasing (focus point, country
// filter) and return ErrNotFound when the provider has no match. Any
// other error is a transport or provider failure.
type GeocodingService interface {
	Search(ctx context.Context, address string) (domain.Coordinates, error)
}
