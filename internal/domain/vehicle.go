package domain

// A delivery vehicle as configured for the fleet. Capacity is expressed
// in capacity units (see the optimizer's capacity unit constant), not
// kilograms. Color and Icon are display metadata for map rendering.
type Vehicle struct {
	ID       int
	Capacity int
	Color    string
	Icon     string
}
