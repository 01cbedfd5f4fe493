package services

import (
	"context"
	"errors"
	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"strings"

	"golang.org/x/sync/singleflight"
)

// ErrEmptyAddress reports a blank address, rejected before any cache or
// provider call.
var ErrEmptyAddress = errors.New("geocode: empty address")

// Geocoder resolves addresses to coordinates, cache-first.
//
// Concurrent lookups of the same address are coalesced into one
// provider call, so parallel batch preparation cannot stampede the
// external service. Failed lookups are never cached: a failing address
// retries a live lookup on every call.
type Geocoder struct {
	provider ports.GeocodingService
	cache    *cache.GeocodeCache
	group    singleflight.Group
}

// NewGeocoder composes a provider with a cache. c may be nil to bypass
// caching entirely (tests, one-shot tools).
func NewGeocoder(provider ports.GeocodingService, c *cache.GeocodeCache) *Geocoder {
	return &Geocoder{provider: provider, cache: c}
}

// Geocode resolves one address. Returns ErrEmptyAddress for blank
// input, ports.ErrNotFound when the provider has no match, and wrapped
// transport errors otherwise.
func (g *Geocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, ErrEmptyAddress
	}

	if g.cache != nil {
		if coords, ok := g.cache.Get(address); ok {
			return coords, nil
		}
	}

	v, err, _ := g.group.Do(address, func() (interface{}, error) {
		// Re-check under the flight: a concurrent caller may have
		// populated the cache while this one waited.
		if g.cache != nil {
			if coords, ok := g.cache.Get(address); ok {
				return coords, nil
			}
		}

		coords, err := g.provider.Search(ctx, address)
		if err != nil {
			return nil, err
		}

		if g.cache != nil {
			g.cache.Put(ctx, address, coords)
		}
		return coords, nil
	})
	if err != nil {
		return domain.Coordinates{}, err
	}

	return v.(domain.Coordinates), nil
}
