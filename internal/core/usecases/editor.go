package usecases

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// EditorConfig carries the defaults an editing session starts with.
type EditorConfig struct {
	DrawingColor domain.Color
	// CloseThresholdMeters is how close a tap must land to the first vertex
	// to close the ring. It does not depend on zoom.
	CloseThresholdMeters float64
	StrokeWidth          float64
	Icons                domain.IconSet
}

// DefaultEditorConfig returns the settings used when nothing is configured.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		DrawingColor:         domain.Color{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF},
		CloseThresholdMeters: 30,
		StrokeWidth:          2,
	}
}

// EditorOption customises an Editor.
type EditorOption func(*Editor)

func WithLogger(l *slog.Logger) EditorOption {
	return func(e *Editor) { e.logger = l }
}

// WithIDGenerator replaces the UUID generator, mostly for tests.
func WithIDGenerator(fn func() string) EditorOption {
	return func(e *Editor) { e.newID = fn }
}

func WithClock(fn func() time.Time) EditorOption {
	return func(e *Editor) { e.now = fn }
}

// Editor is the shape-authoring state machine. It is single threaded: every
// call runs to completion and ends by notifying observers synchronously.
// Wrap it in a SessionService to share it between goroutines.
type Editor struct {
	cfg    EditorConfig
	mode   domain.Mode
	color  domain.Color
	logger *slog.Logger
	newID  func() string
	now    func() time.Time

	observers observers
	handlers  map[eventKey]EventHandler
	revision  uint64
	batch     int
	dirty     bool

	polygons   *PolygonController
	circles    *CircleController
	rectangles *RectangleController
	freehand   *FreehandController
}

// NewEditor creates an editor in ModeNone with empty stores.
func NewEditor(cfg EditorConfig, opts ...EditorOption) *Editor {
	def := DefaultEditorConfig()
	if cfg.DrawingColor == (domain.Color{}) {
		cfg.DrawingColor = def.DrawingColor
	}
	if cfg.CloseThresholdMeters <= 0 {
		cfg.CloseThresholdMeters = def.CloseThresholdMeters
	}
	if cfg.StrokeWidth <= 0 {
		cfg.StrokeWidth = def.StrokeWidth
	}

	e := &Editor{
		cfg:      cfg,
		mode:     domain.ModeNone,
		color:    cfg.DrawingColor,
		logger:   slog.Default(),
		newID:    uuid.NewString,
		now:      time.Now,
		handlers: make(map[eventKey]EventHandler),
	}
	for _, o := range opts {
		o(e)
	}

	e.polygons = &PolygonController{
		ed:    e,
		store: NewStore[domain.Polygon](),
		lines: NewStore[domain.Polyline](),
	}
	e.circles = &CircleController{ed: e, store: NewStore[domain.Circle]()}
	e.rectangles = &RectangleController{ed: e, store: NewStore[domain.Rectangle]()}
	e.freehand = &FreehandController{ed: e, store: NewStore[domain.FreehandPolygon]()}
	return e
}

func (e *Editor) Polygons() *PolygonController     { return e.polygons }
func (e *Editor) Circles() *CircleController       { return e.circles }
func (e *Editor) Rectangles() *RectangleController { return e.rectangles }
func (e *Editor) Freehand() *FreehandController    { return e.freehand }

func (e *Editor) Mode() domain.Mode { return e.mode }

// Revision increases by one with every change notification.
func (e *Editor) Revision() uint64 { return e.revision }

func (e *Editor) Config() EditorConfig { return e.cfg }

// SetMode switches the authoring mode. Every transition is legal. Before the
// switch, in-progress work is finalized or discarded and every selection is
// cleared, so nothing half-built survives. Exactly one change notification
// is sent.
func (e *Editor) SetMode(m domain.Mode) {
	e.batch++

	e.polygons.forceFinish()
	if e.rectangles.drawing != nil {
		e.rectangles.Finish()
	}
	if e.freehand.drawing {
		e.freehand.Finish()
	}
	e.clearSelections()

	prev := e.mode
	e.mode = m
	e.polygons.active = ""
	e.polygons.selected = ""

	e.batch--
	e.dirty = false
	e.notify()

	e.logger.Debug("drawing mode changed", "from", prev, "to", m)
}

func (e *Editor) DrawingColor() domain.Color { return e.color }

// SetDrawingColor sets the color used for shapes authored from now on.
func (e *Editor) SetDrawingColor(c domain.Color) {
	e.color = c
	e.notify()
}

// Selection is the selected ID per kind; empty means nothing selected.
type Selection struct {
	Polygon   string `json:"polygon,omitempty"`
	Circle    string `json:"circle,omitempty"`
	Rectangle string `json:"rectangle,omitempty"`
	Freehand  string `json:"freehand,omitempty"`
}

func (e *Editor) Selection() Selection {
	return Selection{
		Polygon:   e.polygons.selected,
		Circle:    e.circles.selected,
		Rectangle: e.rectangles.selected,
		Freehand:  e.freehand.selected,
	}
}

// ClearSelection deselects every kind regardless of mode.
func (e *Editor) ClearSelection() {
	e.batched(e.clearSelections)
}

func (e *Editor) clearSelections() {
	if e.polygons.selected != "" {
		e.polygons.selected = ""
		e.notify()
	}
	if e.circles.selected != "" {
		e.circles.selected = ""
		e.notify()
	}
	if e.rectangles.selected != "" {
		e.rectangles.selected = ""
		e.notify()
	}
	e.freehand.clearSelection()
}

// DeleteSelected removes the selected shape of the given kind, following
// that kind's own gating rules.
func (e *Editor) DeleteSelected(kind domain.ShapeKind) {
	switch kind {
	case domain.KindPolygon:
		e.polygons.Delete()
	case domain.KindCircle:
		e.circles.Delete()
	case domain.KindRectangle:
		e.rectangles.Delete()
	case domain.KindFreehand:
		e.freehand.Delete()
	}
}

// SetShapeColor recolors a committed shape of any kind.
func (e *Editor) SetShapeColor(kind domain.ShapeKind, id string, c domain.Color) {
	switch kind {
	case domain.KindPolygon:
		e.polygons.SetColor(id, c)
	case domain.KindCircle:
		e.circles.SetColor(id, c)
	case domain.KindRectangle:
		e.rectangles.SetColor(id, c)
	case domain.KindFreehand:
		e.freehand.SetColor(id, c)
	}
}

// Select toggles selection of id within kind.
func (e *Editor) Select(kind domain.ShapeKind, id string) {
	switch kind {
	case domain.KindPolygon:
		e.polygons.Select(id)
	case domain.KindCircle:
		e.circles.Select(id)
	case domain.KindRectangle:
		e.rectangles.Select(id)
	case domain.KindFreehand:
		e.freehand.Select(id)
	}
}

// Shapes returns the committed shapes of one kind in store order.
func (e *Editor) Shapes(kind domain.ShapeKind) []domain.Shape {
	switch kind {
	case domain.KindPolygon:
		return shapes(e.polygons.All())
	case domain.KindCircle:
		return shapes(e.circles.All())
	case domain.KindRectangle:
		return shapes(e.rectangles.All())
	case domain.KindFreehand:
		return shapes(e.freehand.All())
	}
	return nil
}
