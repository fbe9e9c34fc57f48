package domain

// MarkerRole names what a rendered marker lets the user do.
type MarkerRole string

const (
	MarkerFirstVertex     MarkerRole = "first_vertex"
	MarkerVertex          MarkerRole = "vertex"
	MarkerMidpoint        MarkerRole = "midpoint"
	MarkerCircleCenter    MarkerRole = "circle_center"
	MarkerCircleRadius    MarkerRole = "circle_radius"
	MarkerRectangleStart  MarkerRole = "rectangle_start"
	MarkerRectangleCorner MarkerRole = "rectangle_corner"
)

// IconSet holds opaque icon handles supplied by the host, one per marker
// role. The engine stores and forwards them and never decodes them.
type IconSet struct {
	FirstVertex     string `json:"first_vertex,omitempty" mapstructure:"first_vertex"`
	Vertex          string `json:"vertex,omitempty" mapstructure:"vertex"`
	Midpoint        string `json:"midpoint,omitempty" mapstructure:"midpoint"`
	CircleCenter    string `json:"circle_center,omitempty" mapstructure:"circle_center"`
	CircleRadius    string `json:"circle_radius,omitempty" mapstructure:"circle_radius"`
	RectangleStart  string `json:"rectangle_start,omitempty" mapstructure:"rectangle_start"`
	RectangleCorner string `json:"rectangle_corner,omitempty" mapstructure:"rectangle_corner"`
}

// Merge returns s with every non-empty field of o taking precedence.
func (s IconSet) Merge(o IconSet) IconSet {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return IconSet{
		FirstVertex:     pick(s.FirstVertex, o.FirstVertex),
		Vertex:          pick(s.Vertex, o.Vertex),
		Midpoint:        pick(s.Midpoint, o.Midpoint),
		CircleCenter:    pick(s.CircleCenter, o.CircleCenter),
		CircleRadius:    pick(s.CircleRadius, o.CircleRadius),
		RectangleStart:  pick(s.RectangleStart, o.RectangleStart),
		RectangleCorner: pick(s.RectangleCorner, o.RectangleCorner),
	}
}

// Icon returns the handle for role.
func (s IconSet) Icon(role MarkerRole) string {
	switch role {
	case MarkerFirstVertex:
		return s.FirstVertex
	case MarkerVertex:
		return s.Vertex
	case MarkerMidpoint:
		return s.Midpoint
	case MarkerCircleCenter:
		return s.CircleCenter
	case MarkerCircleRadius:
		return s.CircleRadius
	case MarkerRectangleStart:
		return s.RectangleStart
	case MarkerRectangleCorner:
		return s.RectangleCorner
	}
	return ""
}

// Marker is a draggable or tappable handle drawn on top of a shape.
type Marker struct {
	Role     MarkerRole `json:"role"`
	ShapeID  string     `json:"shape_id"`
	Index    int        `json:"index"`
	Edge     int        `json:"edge,omitempty"`
	Corner   Corner     `json:"corner,omitempty"`
	Position GeoPoint   `json:"position"`
	Icon     string     `json:"icon,omitempty"`
}

type StyledPolygon struct {
	ID          string     `json:"id"`
	Kind        ShapeKind  `json:"kind"`
	Points      []GeoPoint `json:"points"`
	StrokeColor Color      `json:"stroke_color"`
	FillColor   Color      `json:"fill_color"`
	StrokeWidth float64    `json:"stroke_width"`
	Selected    bool       `json:"selected"`
	Active      bool       `json:"active,omitempty"`
}

type StyledCircle struct {
	ID          string   `json:"id"`
	Center      GeoPoint `json:"center"`
	Radius      float64  `json:"radius"`
	StrokeColor Color    `json:"stroke_color"`
	FillColor   Color    `json:"fill_color"`
	StrokeWidth float64  `json:"stroke_width"`
	Selected    bool     `json:"selected"`
}

type StyledRectangle struct {
	ID          string  `json:"id"`
	Bounds      Bounds  `json:"bounds"`
	StrokeColor Color   `json:"stroke_color"`
	FillColor   Color   `json:"fill_color"`
	StrokeWidth float64 `json:"stroke_width"`
	Selected    bool    `json:"selected"`
	InProgress  bool    `json:"in_progress,omitempty"`
}

// RenderSnapshot is a read-only projection a map layer can draw directly.
type RenderSnapshot struct {
	Mode       Mode              `json:"mode"`
	Revision   uint64            `json:"revision"`
	Polygons   []StyledPolygon   `json:"polygons"`
	Polylines  []Polyline        `json:"polylines"`
	Circles    []StyledCircle    `json:"circles"`
	Rectangles []StyledRectangle `json:"rectangles"`
	Freehand   []StyledPolygon   `json:"freehand"`
	Trace      []GeoPoint        `json:"trace,omitempty"`
	Markers    []Marker          `json:"markers"`
}
