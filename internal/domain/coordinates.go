package domain

// Immutable geographic coordinates (longitude, latitude), WGS84.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
// ORS endpoints (geocoding, optimization) speak longitude-first.
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }
