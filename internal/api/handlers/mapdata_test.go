package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
	"testing"

	maps "googlemaps.github.io/maps"
)

func TestMapHandlerBuildsFeatureCollection(t *testing.T) {
	// A real encoded path so the LineString survives the decode.
	geometry := maps.Encode([]maps.LatLng{
		{Lat: 59.9386, Lng: 30.3155},
		{Lat: 59.93, Lng: 30.36},
	})

	plan := &services.Plan{
		Routes: map[int]domain.Route{
			1: {
				VehicleID: 1,
				Points: []domain.RoutePoint{
					{Company: "A", Address: "X, 1", Weight: 50, Coords: domain.Coordinates{Lon: 30.36, Lat: 59.93}},
				},
				Geometry: geometry,
			},
		},
		Prepared: 1,
	}

	h := &MapHandler{
		Source:    &mockSource{records: someRecords()},
		Planner:   &mockPlanner{plan: plan},
		Warehouse: domain.Coordinates{Lon: 30.3155, Lat: 59.9386},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/map", nil)
	rec := httptest.NewRecorder()
	h.Map(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var collection geoJSONCollection
	if err := json.Unmarshal(rec.Body.Bytes(), &collection); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if collection.Type != "FeatureCollection" {
		t.Fatalf("type = %q", collection.Type)
	}
	// warehouse + path + one stop
	if len(collection.Features) != 3 {
		t.Fatalf("features = %d, want 3", len(collection.Features))
	}

	kinds := map[string]int{}
	for _, f := range collection.Features {
		kind, _ := f.Properties["kind"].(string)
		kinds[kind]++
	}
	if kinds["warehouse"] != 1 || kinds["path"] != 1 || kinds["stop"] != 1 {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestMapHandlerEmptyPlan(t *testing.T) {
	h := &MapHandler{
		Source:  &mockSource{records: someRecords()},
		Planner: &mockPlanner{plan: &services.Plan{Routes: map[int]domain.Route{}}},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/map", nil)
	rec := httptest.NewRecorder()
	h.Map(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDecodeGeometryRoundtrip(t *testing.T) {
	path := []maps.LatLng{
		{Lat: 59.9386, Lng: 30.3155},
		{Lat: 59.9311, Lng: 30.3609},
	}

	coords, err := decodeGeometry(maps.Encode(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coords) != 2 {
		t.Fatalf("coords = %d, want 2", len(coords))
	}
	// GeoJSON positions are [lon, lat].
	if coords[0][0] != 30.3155 || coords[0][1] != 59.9386 {
		t.Fatalf("coords[0] = %v", coords[0])
	}
}

func TestDecodeGeometryEmpty(t *testing.T) {
	coords, err := decodeGeometry("")
	if err != nil || coords != nil {
		t.Fatalf("coords = %v, err = %v", coords, err)
	}
}
