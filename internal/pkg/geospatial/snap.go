package geospatial

import (
	"math"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

const (
	maxSnapMeters = 300.0
	minSnapMeters = 1.0

	defaultCircleRadius = 2000.0
)

// SnapThreshold is the distance in meters within which two points count as
// the same gesture target at the given zoom: 300 / 2^zoom clamped to [1, 300].
func SnapThreshold(zoom float64) float64 {
	t := maxSnapMeters / math.Pow(2, zoom)
	return math.Max(minSnapMeters, math.Min(maxSnapMeters, t))
}

// circleRadii maps zoom breakpoints to the initial radius of a new circle.
var circleRadii = []struct {
	zoom   float64
	radius float64
}{
	{10, 2000},
	{11, 1200},
	{12, 800},
	{13, 500},
	{14, 350},
	{15, 250},
	{16, 150},
	{17, 100},
	{18, 60},
	{19, 40},
	{20, 25},
}

// CircleRadiusForZoom returns the radius of the highest breakpoint that does
// not exceed zoom. Below the first breakpoint it is 2000 m.
func CircleRadiusForZoom(zoom float64) float64 {
	radius := defaultCircleRadius
	for _, step := range circleRadii {
		if zoom < step.zoom {
			break
		}
		radius = step.radius
	}
	return radius
}

// NearestWithin returns the candidate closest to p if it lies within
// threshold meters.
func NearestWithin(candidates []domain.GeoPoint, p domain.GeoPoint, threshold float64) (domain.GeoPoint, bool) {
	best := math.Inf(1)
	var found domain.GeoPoint
	for _, c := range candidates {
		if d := Distance(c, p); d < best {
			best, found = d, c
		}
	}
	if best > threshold {
		return p, false
	}
	return found, true
}
