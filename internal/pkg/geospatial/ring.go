package geospatial

import (
	"math"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// maxPerturbations bounds the latitude nudges in ContainsPoint. Each nudge
// moves to the next representable float, so one or two always suffice.
const maxPerturbations = 8

// ContainsPoint applies the even-odd rule with a ray cast from p towards
// increasing longitude. A ring may be open or closed.
//
// When p shares its latitude with a vertex the ray would graze that vertex
// and count it twice, so p is nudged north by one ulp until it no longer
// does.
func ContainsPoint(ring []domain.GeoPoint, p domain.GeoPoint) bool {
	if len(ring) < 3 {
		return false
	}

	for i := 0; i < maxPerturbations && onVertexLatitude(ring, p.Lat); i++ {
		p.Lat = math.Nextafter(p.Lat, math.Inf(1))
	}

	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) &&
			p.Lon < (b.Lon-a.Lon)*(p.Lat-a.Lat)/(b.Lat-a.Lat)+a.Lon {
			inside = !inside
		}
	}
	return inside
}

func onVertexLatitude(ring []domain.GeoPoint, lat float64) bool {
	for _, v := range ring {
		if v.Lat == lat {
			return true
		}
	}
	return false
}

// Midpoint is the planar midpoint in degree space.
func Midpoint(a, b domain.GeoPoint) domain.GeoPoint {
	return domain.GeoPoint{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}
}

// Offset shifts p by the given deltas in degrees.
func Offset(p domain.GeoPoint, dLat, dLon float64) domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Lat + dLat, Lon: p.Lon + dLon}
}

// DistinctRing drops the closing point of a closed ring.
func DistinctRing(ring []domain.GeoPoint) []domain.GeoPoint {
	if domain.IsClosedRing(ring) {
		return ring[:len(ring)-1]
	}
	return ring
}

// CloseRing returns ring with its first point appended when it is not
// already closed. The input is never modified.
func CloseRing(ring []domain.GeoPoint) []domain.GeoPoint {
	out := append([]domain.GeoPoint(nil), ring...)
	if len(out) > 0 && !domain.IsClosedRing(out) {
		out = append(out, out[0])
	}
	return out
}

// EdgeMidpoints returns the midpoint of every edge of the distinct ring,
// including the wrap-around edge when the ring has three or more vertices.
// Entry i sits between vertex i and vertex i+1.
func EdgeMidpoints(ring []domain.GeoPoint) []domain.GeoPoint {
	pts := DistinctRing(ring)
	if len(pts) < 2 {
		return nil
	}
	edges := len(pts)
	if edges == 2 {
		edges = 1
	}
	out := make([]domain.GeoPoint, 0, edges)
	for i := 0; i < edges; i++ {
		out = append(out, Midpoint(pts[i], pts[(i+1)%len(pts)]))
	}
	return out
}

// RadiusHandlePosition places a handle due east of center at radiusMeters
// using a flat-earth longitude correction. It diverges near the poles where
// cos(lat) approaches zero.
func RadiusHandlePosition(center domain.GeoPoint, radiusMeters float64) domain.GeoPoint {
	dLon := toDeg(radiusMeters/EarthRadiusMeters) / math.Cos(toRad(center.Lat))
	return domain.GeoPoint{Lat: center.Lat, Lon: center.Lon + dLon}
}
