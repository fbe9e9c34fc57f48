package usecases

import (
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// RectangleController drags out axis-aligned rectangles from an anchor and
// edits them through four corner handles. Selection and deletion only work
// in rectangle mode.
type RectangleController struct {
	ed       *Editor
	store    *Store[domain.Rectangle]
	drawing  *domain.Rectangle
	selected string
}

func (c *RectangleController) Selected() string { return c.selected }

// All returns the committed rectangles.
func (c *RectangleController) All() []domain.Rectangle { return c.store.All() }

func (c *RectangleController) Get(id string) (domain.Rectangle, bool) { return c.store.Get(id) }

// Drawing returns the rectangle being dragged out, if any.
func (c *RectangleController) Drawing() (domain.Rectangle, bool) {
	if c.drawing == nil {
		return domain.Rectangle{}, false
	}
	return *c.drawing, true
}

func (c *RectangleController) enabled() bool {
	return c.ed.mode == domain.ModeRectangle
}

// Start opens a degenerate rectangle anchored at p. A rectangle still in
// progress is committed first.
func (c *RectangleController) Start(p domain.GeoPoint) {
	if !c.enabled() {
		return
	}
	c.ed.batched(func() {
		if c.drawing != nil {
			c.Finish()
		}
		c.drawing = &domain.Rectangle{
			ID:          c.ed.newID(),
			Bounds:      domain.BoundsAround(p, p),
			Anchor:      p,
			StrokeColor: c.ed.color,
			FillColor:   c.ed.color.Fill(),
		}
		c.ed.notify()
	})
}

// Update spans the rectangle between its anchor and p, whichever quadrant p
// falls in.
func (c *RectangleController) Update(p domain.GeoPoint) {
	if c.drawing == nil {
		return
	}
	c.drawing.Bounds = domain.BoundsAround(c.drawing.Anchor, p)
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindRectangle,
		Type:  domain.EventUpdated,
		ID:    c.drawing.ID,
		Shape: *c.drawing,
	})
	c.ed.notify()
}

// Finish commits the rectangle in progress and reports the full collection.
func (c *RectangleController) Finish() {
	if c.drawing == nil {
		return
	}
	c.store.Add(*c.drawing)
	c.drawing = nil
	c.ed.emit(domain.ShapeEvent{
		Kind:       domain.KindRectangle,
		Type:       domain.EventDrawn,
		Collection: shapes(c.store.All()),
	})
	c.ed.notify()
}

// Corners returns the four handle positions of a committed rectangle.
func (c *RectangleController) Corners(id string) (map[domain.Corner]domain.GeoPoint, bool) {
	rect, ok := c.store.Get(id)
	if !ok {
		return nil, false
	}
	out := make(map[domain.Corner]domain.GeoPoint, len(domain.Corners))
	for _, corner := range domain.Corners {
		out[corner] = rect.Bounds.Corner(corner)
	}
	return out, true
}

// DragCorner moves one corner handle of a committed rectangle to target.
// When the move would invert the bounds it is discarded and the stored,
// last good corner position is returned with ok=false so the host can snap
// the handle back.
func (c *RectangleController) DragCorner(id string, corner domain.Corner, target domain.GeoPoint) (domain.GeoPoint, bool) {
	rect, ok := c.store.Get(id)
	if !ok {
		return target, false
	}
	bounds, err := rect.Bounds.WithCorner(corner, target)
	if err != nil {
		return rect.Bounds.Corner(corner), false
	}
	rect.Bounds = bounds
	c.store.Replace(rect)
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindRectangle,
		Type:  domain.EventUpdated,
		ID:    rect.ID,
		Shape: rect,
	})
	c.ed.notify()
	return target, true
}

// HitTest selects the first committed rectangle containing p.
func (c *RectangleController) HitTest(p domain.GeoPoint) bool {
	if !c.enabled() {
		return false
	}
	for _, rect := range c.store.All() {
		if rect.Bounds.Contains(p) {
			if c.selected != rect.ID {
				c.setSelected(rect)
			}
			return true
		}
	}
	c.Deselect()
	return false
}

// Select toggles selection of id.
func (c *RectangleController) Select(id string) {
	if !c.enabled() {
		return
	}
	rect, ok := c.store.Get(id)
	if !ok {
		return
	}
	if c.selected == id {
		c.Deselect()
		return
	}
	c.setSelected(rect)
}

func (c *RectangleController) setSelected(rect domain.Rectangle) {
	c.selected = rect.ID
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindRectangle,
		Type:  domain.EventSelected,
		ID:    rect.ID,
		Shape: rect,
	})
	c.ed.notify()
}

func (c *RectangleController) Deselect() {
	if !c.enabled() || c.selected == "" {
		return
	}
	c.selected = ""
	c.ed.notify()
}

// Delete removes the selected rectangle.
func (c *RectangleController) Delete() {
	if !c.enabled() {
		return
	}
	id := c.selected
	if id == "" {
		return
	}
	c.selected = ""
	if !c.store.Remove(id) {
		return
	}
	c.ed.emit(domain.ShapeEvent{Kind: domain.KindRectangle, Type: domain.EventDeleted, ID: id})
	c.ed.notify()
}

func (c *RectangleController) SetColor(id string, col domain.Color) {
	rect, ok := c.store.Get(id)
	if !ok {
		return
	}
	rect.StrokeColor = col
	rect.FillColor = col.Fill()
	c.store.Replace(rect)
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindRectangle,
		Type:  domain.EventUpdated,
		ID:    id,
		Shape: rect,
	})
	c.ed.notify()
}
