package usecases

import (
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

const (
	freehandStrokeWidth         = 2
	freehandSelectedStrokeWidth = 4
)

// FreehandController records a raw gesture trace and promotes it to a
// polygon when the gesture ends. Selection only works in freehand mode.
type FreehandController struct {
	ed       *Editor
	store    *Store[domain.FreehandPolygon]
	trace    []domain.GeoPoint
	drawing  bool
	selected string
}

func (c *FreehandController) Selected() string { return c.selected }

func (c *FreehandController) Drawing() bool { return c.drawing }

// Trace returns a copy of the points recorded so far.
func (c *FreehandController) Trace() []domain.GeoPoint {
	return append([]domain.GeoPoint(nil), c.trace...)
}

func (c *FreehandController) All() []domain.FreehandPolygon {
	out := c.store.All()
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

func (c *FreehandController) Get(id string) (domain.FreehandPolygon, bool) {
	f, ok := c.store.Get(id)
	return f.Clone(), ok
}

func (c *FreehandController) enabled() bool {
	return c.ed.mode == domain.ModeFreehand
}

// Start clears the trace buffer and begins recording.
func (c *FreehandController) Start() {
	if !c.enabled() {
		return
	}
	c.trace = nil
	c.drawing = true
	c.ed.notify()
}

// AddPoint appends p to the trace as-is; the trace follows raw input.
func (c *FreehandController) AddPoint(p domain.GeoPoint) {
	if !c.drawing {
		return
	}
	c.trace = append(c.trace, p)
	c.ed.notify()
}

// Finish promotes a trace of more than two points to a freehand polygon.
// Shorter traces are dropped. The trace and any selection are cleared and
// the drawn event is sent in both cases.
func (c *FreehandController) Finish() {
	c.ed.batched(func() {
		if c.drawing && len(c.trace) > 2 {
			c.store.Add(domain.FreehandPolygon{
				ID:          c.ed.newID(),
				Points:      append([]domain.GeoPoint(nil), c.trace...),
				StrokeColor: c.ed.color,
				FillColor:   c.ed.color.Fill(),
				StrokeWidth: freehandStrokeWidth,
			})
		} else if c.drawing {
			c.ed.logger.Debug("discarding short freehand trace", "points", len(c.trace))
		}
		c.trace = nil
		c.drawing = false
		c.clearSelection()

		c.ed.emit(domain.ShapeEvent{
			Kind:       domain.KindFreehand,
			Type:       domain.EventDrawn,
			Collection: shapes(c.All()),
		})
		c.ed.notify()
	})
}

// HitTest selects the first freehand polygon containing p.
func (c *FreehandController) HitTest(p domain.GeoPoint) bool {
	if !c.enabled() {
		return false
	}
	for _, f := range c.store.All() {
		if geospatial.ContainsPoint(f.Points, p) {
			if c.selected != f.ID {
				c.Select(f.ID)
			}
			return true
		}
	}
	c.Deselect()
	return false
}

// Select highlights id; selecting the highlighted entry deselects it.
func (c *FreehandController) Select(id string) {
	if !c.enabled() {
		return
	}
	f, ok := c.store.Get(id)
	if !ok {
		return
	}
	if c.selected == id {
		c.Deselect()
		return
	}

	c.ed.batched(func() {
		c.clearSelection()
		f = f.Clone()
		f.StrokeWidth = freehandSelectedStrokeWidth
		c.store.Replace(f)
		c.selected = id
		c.ed.emit(domain.ShapeEvent{
			Kind:  domain.KindFreehand,
			Type:  domain.EventSelected,
			ID:    id,
			Shape: f.Clone(),
		})
		c.ed.notify()
	})
}

// Deselect restores the regular stroke width of the selected entry.
func (c *FreehandController) Deselect() {
	if !c.enabled() {
		return
	}
	c.clearSelection()
}

func (c *FreehandController) clearSelection() {
	if c.selected == "" {
		return
	}
	if f, ok := c.store.Get(c.selected); ok {
		f = f.Clone()
		f.StrokeWidth = freehandStrokeWidth
		c.store.Replace(f)
	}
	c.selected = ""
	c.ed.notify()
}

// Delete removes the selected entry.
func (c *FreehandController) Delete() {
	id := c.selected
	if id == "" {
		return
	}
	c.selected = ""
	if !c.store.Remove(id) {
		return
	}
	c.ed.emit(domain.ShapeEvent{Kind: domain.KindFreehand, Type: domain.EventDeleted, ID: id})
	c.ed.notify()
}

func (c *FreehandController) SetColor(id string, col domain.Color) {
	f, ok := c.store.Get(id)
	if !ok {
		return
	}
	f = f.Clone()
	f.StrokeColor = col
	f.FillColor = col.Fill()
	c.store.Replace(f)
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindFreehand,
		Type:  domain.EventUpdated,
		ID:    id,
		Shape: f.Clone(),
	})
	c.ed.notify()
}
