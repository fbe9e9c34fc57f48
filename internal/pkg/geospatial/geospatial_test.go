package geospatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

func pt(lat, lon float64) domain.GeoPoint { return domain.GeoPoint{Lat: lat, Lon: lon} }

func TestHaversine_KnownDistance(t *testing.T) {
	// Two points in central Bilbao, roughly 820 m apart.
	d := geospatial.Haversine(43.2609, -2.9253, 43.2630, -2.9350)
	assert.InDelta(t, 820, d, 60)
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]domain.GeoPoint{
		{pt(0, 0), pt(1, 1)},
		{pt(43.26, -2.93), pt(40.41, -3.70)},
		{pt(-33.86, 151.2), pt(51.5, -0.12)},
	}
	for _, p := range pairs {
		assert.Equal(t, geospatial.Distance(p[0], p[1]), geospatial.Distance(p[1], p[0]))
		assert.Zero(t, geospatial.Distance(p[0], p[0]))
	}
}

func TestSnapThreshold_Bounds(t *testing.T) {
	assert.Equal(t, 300.0, geospatial.SnapThreshold(0))
	assert.Equal(t, 1.0, geospatial.SnapThreshold(21))
	assert.InDelta(t, 18.75, geospatial.SnapThreshold(4), 1e-9)
	assert.Equal(t, 1.0, geospatial.SnapThreshold(10))

	prev := geospatial.SnapThreshold(0)
	for z := 0.0; z <= 25; z += 0.5 {
		got := geospatial.SnapThreshold(z)
		require.GreaterOrEqual(t, got, 1.0)
		require.LessOrEqual(t, got, 300.0)
		require.LessOrEqual(t, got, prev, "threshold must not grow with zoom (z=%v)", z)
		prev = got
	}
}

func TestCircleRadiusForZoom(t *testing.T) {
	tests := []struct {
		zoom float64
		want float64
	}{
		{0, 2000},
		{9.9, 2000},
		{10, 2000},
		{11, 1200},
		{12.5, 800},
		{15, 250},
		{17, 100},
		{19.99, 40},
		{20, 25},
		{22, 25},
	}
	for _, tt := range tests {
		if got := geospatial.CircleRadiusForZoom(tt.zoom); got != tt.want {
			t.Errorf("CircleRadiusForZoom(%v) = %v, want %v", tt.zoom, got, tt.want)
		}
	}
}

func TestContainsPoint_Square(t *testing.T) {
	square := []domain.GeoPoint{pt(0, 0), pt(0, 2), pt(2, 2), pt(2, 0)}

	assert.True(t, geospatial.ContainsPoint(square, pt(1, 1)))
	assert.False(t, geospatial.ContainsPoint(square, pt(3, 1)))
	assert.False(t, geospatial.ContainsPoint(square, pt(1, -0.5)))
	assert.False(t, geospatial.ContainsPoint(square, pt(-1, -1)))
}

func TestContainsPoint_ClosedRingMatchesOpen(t *testing.T) {
	open := []domain.GeoPoint{pt(0, 0), pt(0, 1), pt(1, 1)}
	closed := append(append([]domain.GeoPoint(nil), open...), open[0])

	for _, p := range []domain.GeoPoint{pt(0.2, 0.8), pt(0.8, 0.2), pt(0.5, 0.9)} {
		assert.Equal(t, geospatial.ContainsPoint(open, p), geospatial.ContainsPoint(closed, p), "point %v", p)
	}
	assert.True(t, geospatial.ContainsPoint(closed, pt(0.2, 0.8)))
}

func TestContainsPoint_VertexLatitude(t *testing.T) {
	square := []domain.GeoPoint{pt(0, 0), pt(0, 2), pt(2, 2), pt(2, 0)}
	// Same latitude as two vertices; must terminate and stay deterministic.
	first := geospatial.ContainsPoint(square, pt(0, 1))
	assert.Equal(t, first, geospatial.ContainsPoint(square, pt(0, 1)))
	assert.False(t, geospatial.ContainsPoint(square, pt(2, 5)))

	diamond := []domain.GeoPoint{pt(1, 0), pt(2, 1), pt(1, 2), pt(0, 1)}
	assert.True(t, geospatial.ContainsPoint(diamond, pt(1, 1)))
	assert.False(t, geospatial.ContainsPoint(diamond, pt(1, 3)))
}

func TestContainsPoint_Degenerate(t *testing.T) {
	assert.False(t, geospatial.ContainsPoint(nil, pt(0, 0)))
	assert.False(t, geospatial.ContainsPoint([]domain.GeoPoint{pt(0, 0), pt(1, 1)}, pt(0.5, 0.5)))
}

func TestEdgeMidpoints(t *testing.T) {
	tri := []domain.GeoPoint{pt(0, 0), pt(0, 2), pt(2, 2), pt(0, 0)}
	mids := geospatial.EdgeMidpoints(tri)
	require.Len(t, mids, 3)
	assert.Equal(t, pt(0, 1), mids[0])
	assert.Equal(t, pt(1, 2), mids[1])
	assert.Equal(t, pt(1, 1), mids[2])

	assert.Len(t, geospatial.EdgeMidpoints([]domain.GeoPoint{pt(0, 0), pt(0, 2)}), 1)
	assert.Empty(t, geospatial.EdgeMidpoints([]domain.GeoPoint{pt(0, 0)}))
}

func TestCloseRing(t *testing.T) {
	open := []domain.GeoPoint{pt(0, 0), pt(0, 1), pt(1, 1)}
	closed := geospatial.CloseRing(open)
	require.Len(t, closed, 4)
	assert.Equal(t, closed[0], closed[3])
	assert.Len(t, open, 3, "input must not change")
	assert.Len(t, geospatial.CloseRing(closed), 4)
	assert.Len(t, geospatial.DistinctRing(closed), 3)
}

func TestRadiusHandlePosition(t *testing.T) {
	center := pt(10, 10)
	handle := geospatial.RadiusHandlePosition(center, 500)
	assert.Equal(t, center.Lat, handle.Lat)
	assert.Greater(t, handle.Lon, center.Lon)
	assert.InDelta(t, 500, geospatial.Distance(center, handle), 0.5)
}

func TestNearestWithin(t *testing.T) {
	candidates := []domain.GeoPoint{pt(0, 0), pt(0, 0.001), pt(1, 1)}

	got, ok := geospatial.NearestWithin(candidates, pt(0, 0.0009), 50)
	require.True(t, ok)
	assert.Equal(t, pt(0, 0.001), got)

	_, ok = geospatial.NearestWithin(candidates, pt(0.5, 0.5), 50)
	assert.False(t, ok)

	_, ok = geospatial.NearestWithin(nil, pt(0, 0), 50)
	assert.False(t, ok)
}

func TestCircleContains(t *testing.T) {
	center := pt(10, 10)
	assert.True(t, geospatial.CircleContains(center, 250, geospatial.RadiusHandlePosition(center, 200)))
	assert.False(t, geospatial.CircleContains(center, 250, geospatial.RadiusHandlePosition(center, 300)))
}
