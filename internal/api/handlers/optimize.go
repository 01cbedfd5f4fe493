package handlers

import (
	"context"
	"log"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
	"sort"
)

// RoutePlanner is the optimizer as the serving layer sees it.
type RoutePlanner interface {
	Optimize(ctx context.Context, records []domain.AddressRecord) (*services.Plan, error)
}

// OptimizeHandler runs the full pipeline: fetch destinations, plan
// routes, render the result. The three empty-result causes get
// distinct statuses so clients can tell them apart without reading
// server logs.
type OptimizeHandler struct {
	Source  ports.AddressSource
	Planner RoutePlanner
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
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
	if plan.Prepared == 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "no address could be geocoded")
		return
	}
	if len(plan.Routes) == 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "solver produced no routes")
		return
	}

	writeJSON(w, r, http.StatusOK, buildOptimizeResponse(plan))
}

func buildOptimizeResponse(plan *services.Plan) dto.OptimizeResponse {
	res := dto.OptimizeResponse{
		Routes:          make([]dto.RouteResponse, 0, len(plan.Routes)),
		GeocodeFailures: plan.GeocodeFailures,
	}

	for _, route := range plan.Routes {
		points := make([]dto.RoutePointResponse, 0, len(route.Points))
		for _, p := range route.Points {
			points = append(points, dto.RoutePointResponse{
				Company:      p.Company,
				Address:      p.Address,
				Weight:       p.Weight,
				Lon:          p.Coords.Lon,
				Lat:          p.Coords.Lat,
				DeliveryDate: p.DeliveryDate,
				Manager:      p.Manager,
			})
		}

		res.Routes = append(res.Routes, dto.RouteResponse{
			VehicleID:   route.VehicleID,
			Points:      points,
			Geometry:    route.Geometry,
			TotalWeight: route.TotalWeight(),
		})
	}

	// Map iteration order is random; clients get vehicles sorted.
	sort.Slice(res.Routes, func(i, j int) bool {
		return res.Routes[i].VehicleID < res.Routes[j].VehicleID
	})

	return res
}
