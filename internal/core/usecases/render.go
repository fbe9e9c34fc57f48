package usecases

import (
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

// Render projects the current state into something a map layer can draw.
// Icons come from the configured IconSet, with non-empty fields of
// overrides taking precedence for this call only.
func (e *Editor) Render(overrides domain.IconSet) domain.RenderSnapshot {
	icons := e.cfg.Icons.Merge(overrides)
	snap := domain.RenderSnapshot{
		Mode:       e.mode,
		Revision:   e.revision,
		Polygons:   []domain.StyledPolygon{},
		Polylines:  []domain.Polyline{},
		Circles:    []domain.StyledCircle{},
		Rectangles: []domain.StyledRectangle{},
		Freehand:   []domain.StyledPolygon{},
		Markers:    []domain.Marker{},
	}

	pc := e.polygons
	for _, p := range pc.All() {
		snap.Polygons = append(snap.Polygons, domain.StyledPolygon{
			ID:          p.ID,
			Kind:        domain.KindPolygon,
			Points:      p.Points,
			StrokeColor: p.StrokeColor,
			FillColor:   p.FillColor,
			StrokeWidth: p.StrokeWidth,
			Selected:    p.ID == pc.selected,
			Active:      p.ID == pc.active,
		})
		switch p.ID {
		case pc.active:
			snap.Markers = append(snap.Markers, vertexMarkers(p, icons)...)
		case pc.selected:
			snap.Markers = append(snap.Markers, vertexMarkers(p, icons)...)
			snap.Markers = append(snap.Markers, midpointMarkers(p, icons)...)
		}
	}
	if line, ok := pc.Polyline(); ok {
		snap.Polylines = append(snap.Polylines, line)
	}

	for _, c := range e.circles.All() {
		selected := c.ID == e.circles.selected
		snap.Circles = append(snap.Circles, domain.StyledCircle{
			ID:          c.ID,
			Center:      c.Center,
			Radius:      c.Radius,
			StrokeColor: c.StrokeColor,
			FillColor:   c.FillColor,
			StrokeWidth: e.cfg.StrokeWidth,
			Selected:    selected,
		})
		if selected {
			snap.Markers = append(snap.Markers,
				domain.Marker{
					Role:     domain.MarkerCircleCenter,
					ShapeID:  c.ID,
					Position: c.Center,
					Icon:     icons.CircleCenter,
				},
				domain.Marker{
					Role:     domain.MarkerCircleRadius,
					ShapeID:  c.ID,
					Position: geospatial.RadiusHandlePosition(c.Center, c.Radius),
					Icon:     icons.CircleRadius,
				},
			)
		}
	}

	for _, r := range e.rectangles.All() {
		selected := r.ID == e.rectangles.selected
		snap.Rectangles = append(snap.Rectangles, domain.StyledRectangle{
			ID:          r.ID,
			Bounds:      r.Bounds,
			StrokeColor: r.StrokeColor,
			FillColor:   r.FillColor,
			StrokeWidth: e.cfg.StrokeWidth,
			Selected:    selected,
		})
		if selected {
			for i, corner := range domain.Corners {
				snap.Markers = append(snap.Markers, domain.Marker{
					Role:     domain.MarkerRectangleCorner,
					ShapeID:  r.ID,
					Index:    i,
					Corner:   corner,
					Position: r.Bounds.Corner(corner),
					Icon:     icons.RectangleCorner,
				})
			}
		}
	}
	if r, ok := e.rectangles.Drawing(); ok {
		snap.Rectangles = append(snap.Rectangles, domain.StyledRectangle{
			ID:          r.ID,
			Bounds:      r.Bounds,
			StrokeColor: r.StrokeColor,
			FillColor:   r.FillColor,
			StrokeWidth: e.cfg.StrokeWidth,
			InProgress:  true,
		})
		snap.Markers = append(snap.Markers, domain.Marker{
			Role:     domain.MarkerRectangleStart,
			ShapeID:  r.ID,
			Position: r.Anchor,
			Icon:     icons.RectangleStart,
		})
	}

	for _, f := range e.freehand.All() {
		styled := domain.StyledPolygon{
			ID:          f.ID,
			Kind:        domain.KindFreehand,
			Points:      f.Points,
			StrokeColor: f.StrokeColor,
			FillColor:   f.FillColor,
			StrokeWidth: freehandStrokeWidth,
		}
		if f.ID == e.freehand.selected {
			styled.Selected = true
			styled.StrokeColor = domain.HighlightBlue
			styled.StrokeWidth = freehandSelectedStrokeWidth
		}
		snap.Freehand = append(snap.Freehand, styled)
	}
	if e.freehand.drawing {
		snap.Trace = e.freehand.Trace()
	}

	return snap
}

func vertexMarkers(p domain.Polygon, icons domain.IconSet) []domain.Marker {
	pts := geospatial.DistinctRing(p.Points)
	out := make([]domain.Marker, 0, len(pts))
	for i, v := range pts {
		m := domain.Marker{
			Role:     domain.MarkerVertex,
			ShapeID:  p.ID,
			Index:    i,
			Position: v,
			Icon:     icons.Vertex,
		}
		if i == 0 {
			m.Role = domain.MarkerFirstVertex
			m.Icon = icons.FirstVertex
		}
		out = append(out, m)
	}
	return out
}

// midpointMarkers places a handle on every edge. Edge is the vertex the edge
// starts at; Index is the slot the handle is inserted at when promoted to a
// vertex.
func midpointMarkers(p domain.Polygon, icons domain.IconSet) []domain.Marker {
	mids := geospatial.EdgeMidpoints(p.Points)
	out := make([]domain.Marker, 0, len(mids))
	for i, m := range mids {
		out = append(out, domain.Marker{
			Role:     domain.MarkerMidpoint,
			ShapeID:  p.ID,
			Index:    i + 1,
			Edge:     i,
			Position: m,
			Icon:     icons.Midpoint,
		})
	}
	return out
}
