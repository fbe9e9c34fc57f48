package usecases

import (
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

// CircleController places circles with a zoom-dependent initial radius and
// edits them through a center handle and a radius handle.
type CircleController struct {
	ed       *Editor
	store    *Store[domain.Circle]
	selected string
}

func (c *CircleController) Selected() string { return c.selected }

func (c *CircleController) All() []domain.Circle { return c.store.All() }

func (c *CircleController) Get(id string) (domain.Circle, bool) { return c.store.Get(id) }

// Add creates and selects a circle centered on center.
func (c *CircleController) Add(center domain.GeoPoint, zoom float64) domain.Circle {
	circle := domain.Circle{
		ID:          c.ed.newID(),
		Center:      center,
		Radius:      geospatial.CircleRadiusForZoom(zoom),
		StrokeColor: c.ed.color,
		FillColor:   c.ed.color.Fill(),
	}
	c.store.Add(circle)
	c.selected = circle.ID

	c.ed.emit(domain.ShapeEvent{
		Kind:       domain.KindCircle,
		Type:       domain.EventDrawn,
		ID:         circle.ID,
		Collection: shapes(c.store.All()),
	})
	c.ed.notify()
	return circle
}

// UpdateCenter moves a circle and keeps its radius.
func (c *CircleController) UpdateCenter(id string, center domain.GeoPoint) {
	circle, ok := c.store.Get(id)
	if !ok {
		return
	}
	circle.Center = center
	c.commit(circle)
}

// UpdateRadius sets the radius to the great-circle distance from the center
// to the dragged handle. A zero radius is rejected.
func (c *CircleController) UpdateRadius(id string, handle domain.GeoPoint) {
	circle, ok := c.store.Get(id)
	if !ok {
		return
	}
	r := geospatial.Distance(circle.Center, handle)
	if r <= 0 {
		return
	}
	circle.Radius = r
	c.commit(circle)
}

// RadiusHandle returns where the radius handle of id is drawn.
func (c *CircleController) RadiusHandle(id string) (domain.GeoPoint, bool) {
	circle, ok := c.store.Get(id)
	if !ok {
		return domain.GeoPoint{}, false
	}
	return geospatial.RadiusHandlePosition(circle.Center, circle.Radius), true
}

func (c *CircleController) commit(circle domain.Circle) {
	c.store.Replace(circle)
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindCircle,
		Type:  domain.EventUpdated,
		ID:    circle.ID,
		Shape: circle,
	})
	c.ed.notify()
}

// HitTest selects the first circle containing p. A miss clears the selection.
func (c *CircleController) HitTest(p domain.GeoPoint) bool {
	for _, circle := range c.store.All() {
		if geospatial.CircleContains(circle.Center, circle.Radius, p) {
			if c.selected != circle.ID {
				c.setSelected(circle)
			}
			return true
		}
	}
	c.Deselect()
	return false
}

// Select toggles: selecting the selected circle deselects it.
func (c *CircleController) Select(id string) {
	circle, ok := c.store.Get(id)
	if !ok {
		return
	}
	if c.selected == id {
		c.Deselect()
		return
	}
	c.setSelected(circle)
}

func (c *CircleController) setSelected(circle domain.Circle) {
	c.selected = circle.ID
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindCircle,
		Type:  domain.EventSelected,
		ID:    circle.ID,
		Shape: circle,
	})
	c.ed.notify()
}

func (c *CircleController) Deselect() {
	if c.selected == "" {
		return
	}
	c.selected = ""
	c.ed.notify()
}

// Delete removes the selected circle. Without a selection it does nothing.
func (c *CircleController) Delete() {
	id := c.selected
	if id == "" {
		return
	}
	c.selected = ""
	if !c.store.Remove(id) {
		return
	}
	c.ed.emit(domain.ShapeEvent{Kind: domain.KindCircle, Type: domain.EventDeleted, ID: id})
	c.ed.notify()
}

func (c *CircleController) SetColor(id string, col domain.Color) {
	circle, ok := c.store.Get(id)
	if !ok {
		return
	}
	circle.StrokeColor = col
	circle.FillColor = col.Fill()
	c.commit(circle)
}
