package geojson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/geojson"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/usecases"
)

func pt(lat, lon float64) domain.GeoPoint { return domain.GeoPoint{Lat: lat, Lon: lon} }

func sampleSet() domain.ShapeSet {
	red := domain.Color{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF}
	return domain.ShapeSet{
		Polygons: []domain.Polygon{
			{ID: "p1", Points: []domain.GeoPoint{pt(0, 0), pt(0, 1), pt(1, 1), pt(0, 0)}, StrokeColor: red, FillColor: red.Fill(), StrokeWidth: 2},
			{ID: "p2", Points: []domain.GeoPoint{pt(5, 5), pt(5, 6), pt(6, 6)}, StrokeColor: red, FillColor: red.Fill(), StrokeWidth: 3},
		},
		Circles: []domain.Circle{
			{ID: "c1", Center: pt(43.26, -2.93), Radius: 250, StrokeColor: red, FillColor: red.Fill()},
		},
		Rectangles: []domain.Rectangle{
			{ID: "r1", Bounds: domain.Bounds{Southwest: pt(0, -1), Northeast: pt(2, 1)}, Anchor: pt(2, 1), StrokeColor: red, FillColor: red.Fill()},
			{ID: "r2", Bounds: domain.Bounds{Southwest: pt(10, 10), Northeast: pt(11, 12)}, Anchor: pt(10, 10), StrokeColor: red, FillColor: red.Fill()},
			{ID: "r3", Bounds: domain.Bounds{Southwest: pt(-3, -3), Northeast: pt(-2, -2)}, Anchor: pt(-3, -2), StrokeColor: red, FillColor: red.Fill()},
		},
		Freehand: []domain.FreehandPolygon{
			{ID: "f1", Points: []domain.GeoPoint{pt(0, 0), pt(0, 2), pt(2, 2), pt(2, 0)}, StrokeColor: red, FillColor: red.Fill(), StrokeWidth: 2},
		},
	}
}

func TestCodec_RoundTripPreservesKinds(t *testing.T) {
	codec := geojson.NewCodec(nil)
	in := sampleSet()

	data, err := codec.Encode(in)
	require.NoError(t, err)

	out, err := codec.Decode(data)
	require.NoError(t, err)

	require.Len(t, out.Polygons, 2)
	require.Len(t, out.Circles, 1)
	require.Len(t, out.Rectangles, 3)
	require.Len(t, out.Freehand, 1)
	assert.Equal(t, in.Len(), out.Len())

	assert.Equal(t, in.Polygons[0].Points, out.Polygons[0].Points)
	assert.True(t, out.Polygons[1].IsClosed(), "GeoJSON rings are always closed")
	assert.Equal(t, "p1", out.Polygons[0].ID)
	assert.Equal(t, in.Polygons[0].StrokeColor, out.Polygons[0].StrokeColor)
	assert.Equal(t, in.Polygons[0].FillColor, out.Polygons[0].FillColor)
	assert.Equal(t, 3.0, out.Polygons[1].StrokeWidth)

	assert.Equal(t, in.Circles[0].Center, out.Circles[0].Center)
	assert.Equal(t, 250.0, out.Circles[0].Radius)

	for i, r := range in.Rectangles {
		assert.Equal(t, r.Bounds, out.Rectangles[i].Bounds)
		assert.Equal(t, r.Anchor, out.Rectangles[i].Anchor)
	}

	assert.Equal(t, in.Freehand[0].Points, out.Freehand[0].Points)
}

func TestCodec_RoundTripThroughEditor(t *testing.T) {
	codec := geojson.NewCodec(nil)
	src := usecases.NewEditor(usecases.DefaultEditorConfig())
	added := src.Import(sampleSet())
	require.Equal(t, 7, added)

	data, err := codec.Encode(src.Export())
	require.NoError(t, err)
	set, err := codec.Decode(data)
	require.NoError(t, err)

	dst := usecases.NewEditor(usecases.DefaultEditorConfig())
	assert.Equal(t, 7, dst.Import(set))
	assert.Len(t, dst.Polygons().All(), 2)
	assert.Len(t, dst.Rectangles().All(), 3)
	assert.Len(t, dst.Circles().All(), 1)
	assert.Len(t, dst.Freehand().All(), 1)
}

func TestCodec_DecodeForeignDocument(t *testing.T) {
	doc := `{
	  "type": "FeatureCollection",
	  "features": [
	    {"type": "Feature", "properties": {},
	     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
	    {"type": "Feature", "properties": {"strokeColor": 7},
	     "geometry": {"type": "MultiPolygon", "coordinates": [
	       [[[10,10],[11,10],[11,11],[10,10]]],
	       [[[20,20],[21,20],[21,21],[20,20]]]
	     ]}},
	    {"type": "Feature", "properties": {"name": "no radius"},
	     "geometry": {"type": "Point", "coordinates": [3,4]}},
	    {"type": "Feature", "properties": {},
	     "geometry": {"type": "LineString", "coordinates": [[0,0],[1,1]]}}
	  ]
	}`

	set, err := geojson.NewCodec(nil).Decode([]byte(doc))
	require.NoError(t, err)

	require.Len(t, set.Polygons, 3, "kindless polygons and split multipolygons")
	assert.Empty(t, set.Circles)
	assert.Empty(t, set.Rectangles)
	assert.Equal(t, pt(0, 1), set.Polygons[0].Points[1], "coordinates are lon,lat")
	assert.Equal(t, domain.Color{}, set.Polygons[1].StrokeColor)
}

func TestCodec_DecodeInvalid(t *testing.T) {
	_, err := geojson.NewCodec(nil).Decode([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestCodec_ContentType(t *testing.T) {
	assert.Equal(t, "application/geo+json", geojson.NewCodec(nil).ContentType())
}
