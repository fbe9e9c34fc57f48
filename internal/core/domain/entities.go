package domain

// ShapeKind names one of the four authoring collections.
type ShapeKind string

const (
	KindPolygon   ShapeKind = "polygon"
	KindCircle    ShapeKind = "circle"
	KindRectangle ShapeKind = "rectangle"
	KindFreehand  ShapeKind = "freehand"
)

// ShapeKinds lists every kind in export order.
var ShapeKinds = []ShapeKind{KindPolygon, KindRectangle, KindCircle, KindFreehand}

// ParseShapeKind accepts the singular or plural kind name.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch s {
	case "polygon", "polygons":
		return KindPolygon, nil
	case "circle", "circles":
		return KindCircle, nil
	case "rectangle", "rectangles":
		return KindRectangle, nil
	case "freehand", "freehands":
		return KindFreehand, nil
	}
	return "", ErrUnknownKind
}

// Shape is implemented by every committed shape value.
type Shape interface {
	ShapeID() string
	ShapeKind() ShapeKind
}

// Polygon is a vertex-authored region. A finalized polygon has at least three
// distinct points. The ring is not implicitly closed: a closing point, when
// present, repeats the first one.
type Polygon struct {
	ID          string     `json:"id"`
	Points      []GeoPoint `json:"points"`
	StrokeColor Color      `json:"stroke_color"`
	FillColor   Color      `json:"fill_color"`
	StrokeWidth float64    `json:"stroke_width"`
}

func (p Polygon) ShapeID() string      { return p.ID }
func (p Polygon) ShapeKind() ShapeKind { return KindPolygon }

// Clone returns a copy that shares no backing array with p.
func (p Polygon) Clone() Polygon {
	p.Points = append([]GeoPoint(nil), p.Points...)
	return p
}

// IsClosed reports whether the last point repeats the first.
func (p Polygon) IsClosed() bool {
	return IsClosedRing(p.Points)
}

// FreehandPolygon has the same layout as Polygon but is traced rather than
// placed vertex by vertex, and lives in its own collection.
type FreehandPolygon Polygon

func (f FreehandPolygon) ShapeID() string      { return f.ID }
func (f FreehandPolygon) ShapeKind() ShapeKind { return KindFreehand }

func (f FreehandPolygon) Clone() FreehandPolygon {
	return FreehandPolygon(Polygon(f).Clone())
}

// Polyline shadows the polygon that is being authored and shares its ID.
type Polyline struct {
	ID     string     `json:"id"`
	Points []GeoPoint `json:"points"`
	Color  Color      `json:"color"`
}

func (l Polyline) ShapeID() string { return l.ID }

// Circle radius is in meters and always positive.
type Circle struct {
	ID          string   `json:"id"`
	Center      GeoPoint `json:"center"`
	Radius      float64  `json:"radius"`
	StrokeColor Color    `json:"stroke_color"`
	FillColor   Color    `json:"fill_color"`
}

func (c Circle) ShapeID() string      { return c.ID }
func (c Circle) ShapeKind() ShapeKind { return KindCircle }

// Rectangle keeps the corner it was started from in Anchor so that drag
// updates can be recomputed relative to it.
type Rectangle struct {
	ID          string   `json:"id"`
	Bounds      Bounds   `json:"bounds"`
	Anchor      GeoPoint `json:"anchor"`
	StrokeColor Color    `json:"stroke_color"`
	FillColor   Color    `json:"fill_color"`
}

func (r Rectangle) ShapeID() string      { return r.ID }
func (r Rectangle) ShapeKind() ShapeKind { return KindRectangle }

// ShapeSet is the unit exchanged with interchange codecs.
type ShapeSet struct {
	Polygons   []Polygon         `json:"polygons"`
	Circles    []Circle          `json:"circles"`
	Rectangles []Rectangle       `json:"rectangles"`
	Freehand   []FreehandPolygon `json:"freehand"`
}

// Len counts shapes across every collection.
func (s ShapeSet) Len() int {
	return len(s.Polygons) + len(s.Circles) + len(s.Rectangles) + len(s.Freehand)
}

// IsClosedRing reports whether ring has at least two points and its last point
// repeats the first.
func IsClosedRing(ring []GeoPoint) bool {
	return len(ring) > 1 && ring[0] == ring[len(ring)-1]
}
