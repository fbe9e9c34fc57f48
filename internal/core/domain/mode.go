package domain

// Mode is the current authoring mode. Exactly one is active per editor.
type Mode string

const (
	ModeNone      Mode = "none"
	ModePolygon   Mode = "polygon"
	ModePolyline  Mode = "polyline"
	ModeCircle    Mode = "circle"
	ModeRectangle Mode = "rectangle"
	ModeFreehand  Mode = "freehand"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeNone, ModePolygon, ModePolyline, ModeCircle, ModeRectangle, ModeFreehand:
		return m, nil
	case "":
		return ModeNone, nil
	}
	return "", ErrUnknownMode
}

// InputType is a discrete gesture delivered by the host.
type InputType string

const (
	InputTap       InputType = "tap"
	InputDragStart InputType = "drag_start"
	InputDragMove  InputType = "drag_move"
	InputDragEnd   InputType = "drag_end"
)

// HandleRef identifies the marker a gesture started on.
type HandleRef struct {
	Role    MarkerRole `json:"role"`
	ShapeID string     `json:"shape_id"`
	Index   int        `json:"index,omitempty"`
	Edge    int        `json:"edge,omitempty"`
	Corner  Corner     `json:"corner,omitempty"`
}

// Input is one gesture with its map coordinate and viewport zoom. Handle is
// set when the gesture targets a marker rather than the map itself.
type Input struct {
	Type   InputType  `json:"type"`
	Point  GeoPoint   `json:"point"`
	Zoom   float64    `json:"zoom"`
	Handle *HandleRef `json:"handle,omitempty"`
}
