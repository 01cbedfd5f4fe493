package api

import (
	"net/http"
	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay
// unaware of concrete adapters).
func NewRouter(
	source ports.AddressSource,
	planner handlers.RoutePlanner,
	warehouse domain.Coordinates,
) http.Handler {
	mux := http.NewServeMux()

	addrHandler := &handlers.AddressHandler{Source: source}
	optHandler := &handlers.OptimizeHandler{Source: source, Planner: planner}
	mapHandler := &handlers.MapHandler{Source: source, Planner: planner, Warehouse: warehouse}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/addresses", addrHandler.List)
	mux.HandleFunc("/api/optimize", optHandler.Optimize)
	mux.HandleFunc("/api/map", mapHandler.Map)

	return loggingMiddleware(mux)
}
