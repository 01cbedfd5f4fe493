package handlers

import (
	"log"
	"net/http"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"sort"

	maps "googlemaps.github.io/maps"
)

type geoJSONFeature struct {
	Type       string         `json:"type"`
	Geometry   map[string]any `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// MapHandler serves the optimized routes as a GeoJSON FeatureCollection:
// one LineString per vehicle (decoded from the solver's polyline),
// numbered stop markers, and the warehouse. Rendering the collection
// onto an actual map is the client's job.
type MapHandler struct {
	Source    ports.AddressSource
	Planner   RoutePlanner
	Warehouse domain.Coordinates
}

func (h *MapHandler) Map(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := h.Source.ListAddresses(r.Context())
	if err != nil {
		log.Printf("list addresses failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(records) == 0 {
		writeError(w, r, http.StatusBadRequest, "no addresses to optimize")
		return
	}

	plan, err := h.Planner.Optimize(r.Context(), records)
	if err != nil {
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "route optimization failed")
		return
	}
	if plan.Prepared == 0 || len(plan.Routes) == 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "nothing to put on the map")
		return
	}

	collection := geoJSONCollection{
		Type:     "FeatureCollection",
		Features: []geoJSONFeature{warehouseFeature(h.Warehouse)},
	}

	vehicleIDs := make([]int, 0, len(plan.Routes))
	for id := range plan.Routes {
		vehicleIDs = append(vehicleIDs, id)
	}
	sort.Ints(vehicleIDs)

	for _, id := range vehicleIDs {
		route := plan.Routes[id]
		collection.Features = append(collection.Features, routeFeatures(route)...)
	}

	writeJSON(w, r, http.StatusOK, collection)
}

func warehouseFeature(c domain.Coordinates) geoJSONFeature {
	return geoJSONFeature{
		Type: "Feature",
		Geometry: map[string]any{
			"type":        "Point",
			"coordinates": c.LonLat(),
		},
		Properties: map[string]any{"kind": "warehouse"},
	}
}

func routeFeatures(route domain.Route) []geoJSONFeature {
	features := make([]geoJSONFeature, 0, len(route.Points)+1)

	if line, err := decodeGeometry(route.Geometry); err != nil {
		// A bad polyline loses the path, not the stops.
		log.Printf("decode geometry failed vehicle=%d err=%v", route.VehicleID, err)
	} else if len(line) > 0 {
		features = append(features, geoJSONFeature{
			Type: "Feature",
			Geometry: map[string]any{
				"type":        "LineString",
				"coordinates": line,
			},
			Properties: map[string]any{
				"kind":       "path",
				"vehicle_id": route.VehicleID,
			},
		})
	}

	for i, p := range route.Points {
		features = append(features, geoJSONFeature{
			Type: "Feature",
			Geometry: map[string]any{
				"type":        "Point",
				"coordinates": p.Coords.LonLat(),
			},
			Properties: map[string]any{
				"kind":       "stop",
				"vehicle_id": route.VehicleID,
				"sequence":   i + 1,
				"company":    p.Company,
				"address":    p.Address,
				"weight":     p.Weight,
			},
		})
	}

	return features
}

// decodeGeometry expands the solver's encoded polyline into GeoJSON
// [lon, lat] positions.
func decodeGeometry(encoded string) ([][]float64, error) {
	if encoded == "" {
		return nil, nil
	}

	path, err := maps.DecodePolyline(encoded)
	if err != nil {
		return nil, err
	}

	coords := make([][]float64, 0, len(path))
	for _, ll := range path {
		coords = append(coords, []float64{ll.Lng, ll.Lat})
	}
	return coords, nil
}
