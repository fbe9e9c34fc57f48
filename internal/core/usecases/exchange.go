package usecases

import (
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// Export returns every finalized shape. A polygon still being authored and a
// rectangle still being dragged are left out.
func (e *Editor) Export() domain.ShapeSet {
	return domain.ShapeSet{
		Polygons:   e.polygons.Finalized(),
		Circles:    e.circles.All(),
		Rectangles: e.rectangles.All(),
		Freehand:   e.freehand.All(),
	}
}

// Import appends the shapes in set under fresh IDs, so importing the same
// document twice yields duplicates. Missing colors fall back to the current
// drawing color. It returns the number of shapes added.
func (e *Editor) Import(set domain.ShapeSet) int {
	added := 0
	e.batched(func() {
		for _, p := range set.Polygons {
			if distinctCount(p.Points) < 3 {
				e.logger.Debug("skipping degenerate imported polygon", "points", len(p.Points))
				continue
			}
			p = p.Clone()
			p.ID = e.newID()
			p.StrokeColor, p.FillColor = e.importColors(p.StrokeColor, p.FillColor)
			if p.StrokeWidth <= 0 {
				p.StrokeWidth = e.cfg.StrokeWidth
			}
			e.polygons.add(p)
			added++
		}
		for _, c := range set.Circles {
			if c.Radius <= 0 {
				e.logger.Debug("skipping imported circle without radius")
				continue
			}
			c.ID = e.newID()
			c.StrokeColor, c.FillColor = e.importColors(c.StrokeColor, c.FillColor)
			e.circles.store.Add(c)
			added++
		}
		for _, r := range set.Rectangles {
			b, err := domain.NewBounds(r.Bounds.Southwest, r.Bounds.Northeast)
			if err != nil {
				b = domain.BoundsAround(r.Bounds.Southwest, r.Bounds.Northeast)
			}
			r.Bounds = b
			if !b.Contains(r.Anchor) {
				r.Anchor = b.Southwest
			}
			r.ID = e.newID()
			r.StrokeColor, r.FillColor = e.importColors(r.StrokeColor, r.FillColor)
			e.rectangles.store.Add(r)
			added++
		}
		for _, f := range set.Freehand {
			if len(f.Points) <= 2 {
				continue
			}
			f = f.Clone()
			f.ID = e.newID()
			f.StrokeColor, f.FillColor = e.importColors(f.StrokeColor, f.FillColor)
			f.StrokeWidth = freehandStrokeWidth
			e.freehand.store.Add(f)
			added++
		}

		if added == 0 {
			return
		}
		if len(set.Polygons) > 0 {
			e.emit(domain.ShapeEvent{Kind: domain.KindPolygon, Type: domain.EventDrawn, Collection: shapes(e.polygons.Finalized())})
		}
		if len(set.Circles) > 0 {
			e.emit(domain.ShapeEvent{Kind: domain.KindCircle, Type: domain.EventDrawn, Collection: shapes(e.circles.All())})
		}
		if len(set.Rectangles) > 0 {
			e.emit(domain.ShapeEvent{Kind: domain.KindRectangle, Type: domain.EventDrawn, Collection: shapes(e.rectangles.All())})
		}
		if len(set.Freehand) > 0 {
			e.emit(domain.ShapeEvent{Kind: domain.KindFreehand, Type: domain.EventDrawn, Collection: shapes(e.freehand.All())})
		}
		e.notify()
	})
	return added
}

func (e *Editor) importColors(stroke, fill domain.Color) (domain.Color, domain.Color) {
	if stroke == (domain.Color{}) {
		stroke = e.color
	}
	if fill == (domain.Color{}) {
		fill = stroke.Fill()
	}
	return stroke, fill
}
