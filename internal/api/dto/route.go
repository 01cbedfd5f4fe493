package dto

type RoutePointResponse struct {
	Company      string  `json:"company"`
	Address      string  `json:"address"`
	Weight       float64 `json:"weight"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
	DeliveryDate string  `json:"delivery_date,omitempty"`
	Manager      string  `json:"manager,omitempty"`
}

type RouteResponse struct {
	VehicleID   int                  `json:"vehicle_id"`
	Points      []RoutePointResponse `json:"points"`
	Geometry    string               `json:"geometry"`
	TotalWeight float64              `json:"total_weight"`
}

type OptimizeResponse struct {
	Routes          []RouteResponse `json:"routes"`
	GeocodeFailures int             `json:"geocode_failures"`
}
