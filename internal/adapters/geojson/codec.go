// Package geojson encodes shape sets as GeoJSON feature collections.
package geojson

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	gj "github.com/paulmach/orb/geojson"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

// ContentType is the registered media type for GeoJSON.
const ContentType = "application/geo+json"

// Feature property keys.
const (
	propID          = "id"
	propKind        = "shapeKind"
	propStroke      = "strokeColor"
	propFill        = "fillColor"
	propStrokeWidth = "strokeWidth"
	propRadius      = "radius"
	propAnchor      = "anchor"
	propArea        = "areaSqMeters"
)

// Codec implements ports.InterchangeCodec for GeoJSON.
//
// Polygons, freehand polygons and rectangles become closed-ring Polygon
// features; circles become Point features with a radius property in meters.
// On decode a polygon without a shapeKind is a plain polygon, MultiPolygons
// are split and anything else is skipped.
type Codec struct {
	logger *slog.Logger
}

// NewCodec creates a Codec. logger may be nil.
func NewCodec(logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{logger: logger}
}

func (c *Codec) ContentType() string { return ContentType }

// Encode writes set as a FeatureCollection, kinds in export order.
func (c *Codec) Encode(set domain.ShapeSet) ([]byte, error) {
	fc := gj.NewFeatureCollection()

	for _, p := range set.Polygons {
		fc.Append(ringFeature(domain.KindPolygon, p.ID, p.Points, p.StrokeColor, p.FillColor, p.StrokeWidth))
	}
	for _, r := range set.Rectangles {
		f := ringFeature(domain.KindRectangle, r.ID, r.Bounds.Ring(), r.StrokeColor, r.FillColor, 0)
		delete(f.Properties, propStrokeWidth)
		f.Properties[propAnchor] = []float64{r.Anchor.Lon, r.Anchor.Lat}
		fc.Append(f)
	}
	for _, ci := range set.Circles {
		f := gj.NewFeature(toPoint(ci.Center))
		f.ID = ci.ID
		minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(ci.Center.Lat, ci.Center.Lon, ci.Radius)
		f.BBox = gj.BBox{minLon, minLat, maxLon, maxLat}
		f.Properties[propID] = ci.ID
		f.Properties[propKind] = string(domain.KindCircle)
		f.Properties[propStroke] = ci.StrokeColor.Hex()
		f.Properties[propFill] = ci.FillColor.Hex()
		f.Properties[propRadius] = ci.Radius
		fc.Append(f)
	}
	for _, fh := range set.Freehand {
		fc.Append(ringFeature(domain.KindFreehand, fh.ID, fh.Points, fh.StrokeColor, fh.FillColor, fh.StrokeWidth))
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshal feature collection: %w", err)
	}
	return data, nil
}

func ringFeature(kind domain.ShapeKind, id string, pts []domain.GeoPoint, stroke, fill domain.Color, width float64) *gj.Feature {
	poly := orb.Polygon{toRing(pts)}
	f := gj.NewFeature(poly)
	f.ID = id
	f.Properties[propID] = id
	f.Properties[propKind] = string(kind)
	f.Properties[propStroke] = stroke.Hex()
	f.Properties[propFill] = fill.Hex()
	f.Properties[propStrokeWidth] = width
	f.Properties[propArea] = geo.Area(poly)
	return f
}

// Decode reads a FeatureCollection. Feature IDs are carried over but the
// editor assigns fresh ones on import.
func (c *Codec) Decode(data []byte) (domain.ShapeSet, error) {
	fc, err := gj.UnmarshalFeatureCollection(data)
	if err != nil {
		return domain.ShapeSet{}, fmt.Errorf("unmarshal feature collection: %w", err)
	}

	var set domain.ShapeSet
	for i, f := range fc.Features {
		kind := stringProp(f.Properties, propKind)
		if kind == "" {
			kind = string(domain.KindPolygon)
		}

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			c.addPolygon(&set, domain.ShapeKind(kind), f, g)
		case orb.MultiPolygon:
			for _, p := range g {
				c.addPolygon(&set, domain.ShapeKind(kind), f, p)
			}
		case orb.Point:
			radius := floatProp(f.Properties, propRadius)
			if radius <= 0 {
				c.logger.Warn("skipping point feature without radius", "feature", i)
				continue
			}
			stroke, fill := colors(f.Properties)
			set.Circles = append(set.Circles, domain.Circle{
				ID:          stringProp(f.Properties, propID),
				Center:      fromPoint(g),
				Radius:      radius,
				StrokeColor: stroke,
				FillColor:   fill,
			})
		default:
			c.logger.Warn("skipping unsupported geometry", "feature", i, "type", geometryType(f.Geometry))
		}
	}
	return set, nil
}

func (c *Codec) addPolygon(set *domain.ShapeSet, kind domain.ShapeKind, f *gj.Feature, g orb.Polygon) {
	if len(g) == 0 {
		return
	}
	if len(g) > 1 {
		c.logger.Debug("dropping polygon holes", "holes", len(g)-1)
	}
	id := stringProp(f.Properties, propID)
	stroke, fill := colors(f.Properties)
	width := floatProp(f.Properties, propStrokeWidth)
	pts := fromRing(g[0])

	switch kind {
	case domain.KindRectangle:
		b := g.Bound()
		bounds := domain.BoundsAround(fromPoint(b.Min), fromPoint(b.Max))
		anchor := bounds.Southwest
		if a, ok := f.Properties[propAnchor].([]interface{}); ok && len(a) == 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				anchor = domain.GeoPoint{Lat: lat, Lon: lon}
			}
		}
		set.Rectangles = append(set.Rectangles, domain.Rectangle{
			ID:          id,
			Bounds:      bounds,
			Anchor:      anchor,
			StrokeColor: stroke,
			FillColor:   fill,
		})
	case domain.KindFreehand:
		set.Freehand = append(set.Freehand, domain.FreehandPolygon{
			ID:          id,
			Points:      geospatial.DistinctRing(pts),
			StrokeColor: stroke,
			FillColor:   fill,
			StrokeWidth: width,
		})
	default:
		set.Polygons = append(set.Polygons, domain.Polygon{
			ID:          id,
			Points:      pts,
			StrokeColor: stroke,
			FillColor:   fill,
			StrokeWidth: width,
		})
	}
}

// colors reads the stroke and fill properties. Unparseable values come back
// as the zero color, which the editor replaces with its drawing color.
func colors(props gj.Properties) (stroke, fill domain.Color) {
	stroke, _ = domain.ParseColor(stringProp(props, propStroke))
	fill, _ = domain.ParseColor(stringProp(props, propFill))
	return stroke, fill
}

// stringProp and floatProp read optional properties. Mistyped values read
// as zero.
func stringProp(props gj.Properties, key string) string {
	v, _ := props[key].(string)
	return v
}

func floatProp(props gj.Properties, key string) float64 {
	v, _ := props[key].(float64)
	return v
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}

func toPoint(p domain.GeoPoint) orb.Point { return orb.Point{p.Lon, p.Lat} }

func fromPoint(p orb.Point) domain.GeoPoint { return domain.GeoPoint{Lat: p.Lat(), Lon: p.Lon()} }

func toRing(pts []domain.GeoPoint) orb.Ring {
	closed := geospatial.CloseRing(pts)
	ring := make(orb.Ring, len(closed))
	for i, p := range closed {
		ring[i] = toPoint(p)
	}
	return ring
}

func fromRing(r orb.Ring) []domain.GeoPoint {
	out := make([]domain.GeoPoint, len(r))
	for i, p := range r {
		out[i] = fromPoint(p)
	}
	return out
}
