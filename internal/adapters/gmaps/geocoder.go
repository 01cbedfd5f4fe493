package gmaps

import (
	"context"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"

	maps "googlemaps.github.io/maps"
)

// Geocoder resolves addresses through the Google Maps Geocoding API.
// It is an alternate provider to ORS Pelias, selected by configuration,
// and satisfies the same GeocodingService contract: country-biased
// lookup, ErrNotFound on no results.
type Geocoder struct {
	client  *maps.Client
	region  string // ccTLD region bias, e.g. "ru"
	country string // component filter, e.g. "RU"
}

func NewGeocoder(apiKey, region, country string) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}

	return &Geocoder{client: client, region: region, country: country}, nil
}

func (g *Geocoder) Search(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "gmaps.geocode")(&err)

	req := &maps.GeocodingRequest{
		Address: address,
		Region:  g.region,
	}
	if g.country != "" {
		req.Components = map[maps.Component]string{maps.ComponentCountry: g.country}
	}

	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrNotFound)
	}

	loc := results[0].Geometry.Location
	return domain.Coordinates{Lon: loc.Lng, Lat: loc.Lat}, nil
}
