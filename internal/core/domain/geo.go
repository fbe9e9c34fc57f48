package domain

// GeoPoint represents a geographic coordinate on a spherical earth.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is an axis-aligned box with Southwest.Lat <= Northeast.Lat and
// Southwest.Lon <= Northeast.Lon. Build it with NewBounds or BoundsAround.
type Bounds struct {
	Southwest GeoPoint `json:"southwest"`
	Northeast GeoPoint `json:"northeast"`
}

// NewBounds validates corner ordering before building a Bounds.
func NewBounds(sw, ne GeoPoint) (Bounds, error) {
	if sw.Lat > ne.Lat || sw.Lon > ne.Lon {
		return Bounds{}, ErrInvertedBounds
	}
	return Bounds{Southwest: sw, Northeast: ne}, nil
}

// BoundsAround returns the normalized box spanning a and b.
func BoundsAround(a, b GeoPoint) Bounds {
	return Bounds{
		Southwest: GeoPoint{Lat: min(a.Lat, b.Lat), Lon: min(a.Lon, b.Lon)},
		Northeast: GeoPoint{Lat: max(a.Lat, b.Lat), Lon: max(a.Lon, b.Lon)},
	}
}

// Contains reports whether p lies inside or on the edge of b.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lat >= b.Southwest.Lat && p.Lat <= b.Northeast.Lat &&
		p.Lon >= b.Southwest.Lon && p.Lon <= b.Northeast.Lon
}

// Ring returns the closed ring sw, se, ne, nw, sw.
func (b Bounds) Ring() []GeoPoint {
	sw := b.Corner(CornerSW)
	return []GeoPoint{sw, b.Corner(CornerSE), b.Corner(CornerNE), b.Corner(CornerNW), sw}
}

// Corner is one of the four draggable rectangle handles.
type Corner string

const (
	CornerSW Corner = "sw"
	CornerSE Corner = "se"
	CornerNE Corner = "ne"
	CornerNW Corner = "nw"
)

// Corners lists the handles in render order.
var Corners = []Corner{CornerSW, CornerSE, CornerNE, CornerNW}

// ParseCorner validates a corner name.
func ParseCorner(s string) (Corner, error) {
	switch c := Corner(s); c {
	case CornerSW, CornerSE, CornerNE, CornerNW:
		return c, nil
	}
	return "", ErrUnknownCorner
}

// Corner returns the position of the named handle.
func (b Bounds) Corner(c Corner) GeoPoint {
	switch c {
	case CornerSE:
		return GeoPoint{Lat: b.Southwest.Lat, Lon: b.Northeast.Lon}
	case CornerNE:
		return b.Northeast
	case CornerNW:
		return GeoPoint{Lat: b.Northeast.Lat, Lon: b.Southwest.Lon}
	default:
		return b.Southwest
	}
}

// WithCorner moves one handle to p. Each corner only owns two of the four
// bound fields, so the other two stay put. The result is validated with
// NewBounds and an inverted box is reported as ErrInvertedBounds.
func (b Bounds) WithCorner(c Corner, p GeoPoint) (Bounds, error) {
	sw, ne := b.Southwest, b.Northeast
	switch c {
	case CornerSW:
		sw.Lat, sw.Lon = p.Lat, p.Lon
	case CornerSE:
		sw.Lat, ne.Lon = p.Lat, p.Lon
	case CornerNE:
		ne.Lat, ne.Lon = p.Lat, p.Lon
	case CornerNW:
		ne.Lat, sw.Lon = p.Lat, p.Lon
	default:
		return b, ErrUnknownCorner
	}
	return NewBounds(sw, ne)
}
