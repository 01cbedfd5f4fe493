package domain

// A geocoded delivery destination. A RoutePoint exists only for
// addresses that geocoded successfully, so Coords is always valid.
type RoutePoint struct {
	Company      string
	Address      string
	Weight       float64
	Coords       Coordinates
	DeliveryDate string
	Manager      string
}

// The planned route for a single vehicle.
//
// Points is the visiting sequence chosen by the solver, in order.
// Geometry is the solver's encoded polyline for the full path,
// passed through unmodified. The warehouse is the vehicle's start and
// end location and never appears as a RoutePoint.
type Route struct {
	VehicleID int
	Points    []RoutePoint
	Geometry  string
}

// TotalWeight sums the parcel weight over all points on the route.
func (r Route) TotalWeight() float64 {
	var total float64
	for _, p := range r.Points {
		total += p.Weight
	}
	return total
}
