package geo

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Indonesia covers the whole archipelago. Rows outside this box are bad
// geocodes, not real destinations.
var Indonesia = Bounds{MinLat: -11, MaxLat: 6, MinLng: 95, MaxLng: 141}

// Contains reports whether the coordinate pair lies inside the box
// (inclusive on all edges).
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}
