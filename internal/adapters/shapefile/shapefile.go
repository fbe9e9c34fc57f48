// Package shapefile writes and reads shape sets as ESRI shapefiles.
//
// A set is stored as two layers next to each other: <base>_polygons.shp holds
// polygons, rectangles and freehand polygons told apart by the KIND
// attribute, <base>_circles.shp holds circle centers with a RADIUS in meters.
package shapefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

const (
	fieldID     = "ID"
	fieldKind   = "KIND"
	fieldStroke = "STROKE"
	fieldFill   = "FILL"
	fieldWidth  = "WIDTH"
	fieldRadius = "RADIUS"
)

// PolygonPath and CirclePath name the two layers of base.
func PolygonPath(base string) string { return base + "_polygons.shp" }
func CirclePath(base string) string  { return base + "_circles.shp" }

// Write stores set under base, replacing existing layers.
func Write(base string, set domain.ShapeSet) error {
	if err := writePolygons(PolygonPath(base), set); err != nil {
		return fmt.Errorf("write polygon layer: %w", err)
	}
	if err := writeCircles(CirclePath(base), set.Circles); err != nil {
		return fmt.Errorf("write circle layer: %w", err)
	}
	return nil
}

type ringRow struct {
	id     string
	kind   domain.ShapeKind
	points []domain.GeoPoint
	stroke domain.Color
	fill   domain.Color
	width  float64
}

func writePolygons(path string, set domain.ShapeSet) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return err
	}
	if err := fillPolygons(w, set); err != nil {
		w.Close()
		return err
	}
	return closeLayer(w, path)
}

func fillPolygons(w *shp.Writer, set domain.ShapeSet) error {
	fields := []shp.Field{
		shp.StringField(fieldID, 40),
		shp.StringField(fieldKind, 10),
		shp.StringField(fieldStroke, 9),
		shp.StringField(fieldFill, 9),
		shp.FloatField(fieldWidth, 8, 2),
	}
	if err := w.SetFields(fields); err != nil {
		return err
	}

	var rows []ringRow
	for _, p := range set.Polygons {
		rows = append(rows, ringRow{p.ID, domain.KindPolygon, p.Points, p.StrokeColor, p.FillColor, p.StrokeWidth})
	}
	for _, r := range set.Rectangles {
		rows = append(rows, ringRow{r.ID, domain.KindRectangle, r.Bounds.Ring(), r.StrokeColor, r.FillColor, 0})
	}
	for _, f := range set.Freehand {
		rows = append(rows, ringRow{f.ID, domain.KindFreehand, f.Points, f.StrokeColor, f.FillColor, f.StrokeWidth})
	}

	for _, row := range rows {
		ring := geospatial.CloseRing(row.points)
		pts := make([]shp.Point, len(ring))
		for i, p := range ring {
			pts[i] = shp.Point{X: p.Lon, Y: p.Lat}
		}
		poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{pts}))
		n := int(w.Write(&poly))

		attrs := []interface{}{row.id, string(row.kind), row.stroke.Hex(), row.fill.Hex(), row.width}
		for i, v := range attrs {
			if err := w.WriteAttribute(n, i, v); err != nil {
				return fmt.Errorf("attribute %d of %s: %w", i, row.id, err)
			}
		}
	}
	return nil
}

func writeCircles(path string, circles []domain.Circle) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return err
	}
	if err := fillCircles(w, circles); err != nil {
		w.Close()
		return err
	}
	return closeLayer(w, path)
}

func fillCircles(w *shp.Writer, circles []domain.Circle) error {
	if err := w.SetFields([]shp.Field{
		shp.StringField(fieldID, 40),
		shp.StringField(fieldStroke, 9),
		shp.StringField(fieldFill, 9),
		shp.FloatField(fieldRadius, 12, 2),
	}); err != nil {
		return err
	}

	for _, c := range circles {
		n := int(w.Write(&shp.Point{X: c.Center.Lon, Y: c.Center.Lat}))
		for i, v := range []interface{}{c.ID, c.StrokeColor.Hex(), c.FillColor.Hex(), c.Radius} {
			if err := w.WriteAttribute(n, i, v); err != nil {
				return fmt.Errorf("attribute %d of %s: %w", i, c.ID, err)
			}
		}
	}
	return nil
}

// closeLayer flushes the headers of a finished layer. go-shp names the
// attribute table "<name>dbf" (no dot) on write but opens "<name>.dbf" on
// read, so the table is moved to the name readers expect.
func closeLayer(w *shp.Writer, path string) error {
	w.Close()

	name := strings.TrimSuffix(path, ".shp")
	if err := os.Rename(name+"dbf", name+".dbf"); err != nil {
		return fmt.Errorf("attribute table of %s: %w", path, err)
	}
	return nil
}

// Read loads both layers of base. A missing circle layer reads as no
// circles; a missing polygon layer is an error.
func Read(base string) (domain.ShapeSet, error) {
	var set domain.ShapeSet
	if err := readPolygons(PolygonPath(base), &set); err != nil {
		return domain.ShapeSet{}, fmt.Errorf("read polygon layer: %w", err)
	}

	if _, err := os.Stat(CirclePath(base)); errors.Is(err, fs.ErrNotExist) {
		return set, nil
	}
	if err := readCircles(CirclePath(base), &set); err != nil {
		return domain.ShapeSet{}, fmt.Errorf("read circle layer: %w", err)
	}
	return set, nil
}

// fieldIndex maps trimmed field names to their column.
func fieldIndex(fields []shp.Field) map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[strings.TrimRight(string(f.Name[:]), "\x00 ")] = i
	}
	return idx
}

type attrReader struct {
	r   *shp.Reader
	idx map[string]int
	row int
}

func (a attrReader) str(name string) string {
	i, ok := a.idx[name]
	if !ok {
		return ""
	}
	// Unwritten bytes of a record stay NUL.
	return strings.TrimSpace(strings.TrimRight(a.r.ReadAttribute(a.row, i), "\x00"))
}

func (a attrReader) float(name string) float64 {
	v, _ := strconv.ParseFloat(a.str(name), 64)
	return v
}

func (a attrReader) color(name string) domain.Color {
	c, _ := domain.ParseColor(a.str(name))
	return c
}

func readPolygons(path string, set *domain.ShapeSet) error {
	r, err := shp.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	idx := fieldIndex(r.Fields())
	for r.Next() {
		n, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || len(poly.Points) == 0 {
			continue
		}
		// Only the outer ring is kept.
		end := len(poly.Points)
		if poly.NumParts > 1 {
			end = int(poly.Parts[1])
		}
		pts := make([]domain.GeoPoint, 0, end)
		for _, p := range poly.Points[:end] {
			pts = append(pts, domain.GeoPoint{Lat: p.Y, Lon: p.X})
		}

		a := attrReader{r: r, idx: idx, row: n}
		kind, err := domain.ParseShapeKind(a.str(fieldKind))
		if err != nil {
			kind = domain.KindPolygon
		}
		switch kind {
		case domain.KindRectangle:
			b := boundsOf(pts)
			set.Rectangles = append(set.Rectangles, domain.Rectangle{
				ID:          a.str(fieldID),
				Bounds:      b,
				Anchor:      b.Southwest,
				StrokeColor: a.color(fieldStroke),
				FillColor:   a.color(fieldFill),
			})
		case domain.KindFreehand:
			set.Freehand = append(set.Freehand, domain.FreehandPolygon{
				ID:          a.str(fieldID),
				Points:      geospatial.DistinctRing(pts),
				StrokeColor: a.color(fieldStroke),
				FillColor:   a.color(fieldFill),
				StrokeWidth: a.float(fieldWidth),
			})
		default:
			set.Polygons = append(set.Polygons, domain.Polygon{
				ID:          a.str(fieldID),
				Points:      pts,
				StrokeColor: a.color(fieldStroke),
				FillColor:   a.color(fieldFill),
				StrokeWidth: a.float(fieldWidth),
			})
		}
	}
	return r.Err()
}

func readCircles(path string, set *domain.ShapeSet) error {
	r, err := shp.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	idx := fieldIndex(r.Fields())
	for r.Next() {
		n, shape := r.Shape()
		p, ok := shape.(*shp.Point)
		if !ok {
			continue
		}
		a := attrReader{r: r, idx: idx, row: n}
		set.Circles = append(set.Circles, domain.Circle{
			ID:          a.str(fieldID),
			Center:      domain.GeoPoint{Lat: p.Y, Lon: p.X},
			Radius:      a.float(fieldRadius),
			StrokeColor: a.color(fieldStroke),
			FillColor:   a.color(fieldFill),
		})
	}
	return r.Err()
}

func boundsOf(pts []domain.GeoPoint) domain.Bounds {
	b := domain.BoundsAround(pts[0], pts[0])
	for _, p := range pts[1:] {
		b = domain.BoundsAround(
			domain.GeoPoint{Lat: min(b.Southwest.Lat, p.Lat), Lon: min(b.Southwest.Lon, p.Lon)},
			domain.GeoPoint{Lat: max(b.Northeast.Lat, p.Lat), Lon: max(b.Northeast.Lon, p.Lon)},
		)
	}
	return b
}
