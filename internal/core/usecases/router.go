package usecases

import (
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

// Handle routes one host gesture to the controller for the current mode.
// Gestures on a marker go to that marker's edit operation instead. Polyline
// and none modes have no controller and ignore map gestures.
func (e *Editor) Handle(in domain.Input) {
	if in.Handle != nil {
		e.handleMarker(in)
		return
	}

	switch e.mode {
	case domain.ModePolygon:
		if in.Type != domain.InputTap {
			return
		}
		if e.polygons.active != "" || !e.polygons.HitTest(in.Point) {
			e.polygons.AddPoint(in.Point)
		}

	case domain.ModeCircle:
		if in.Type != domain.InputTap {
			return
		}
		if !e.circles.HitTest(in.Point) {
			e.circles.Add(in.Point, in.Zoom)
		}

	case domain.ModeRectangle:
		switch in.Type {
		case domain.InputTap:
			e.rectangles.HitTest(in.Point)
		case domain.InputDragStart:
			e.rectangles.Start(in.Point)
		case domain.InputDragMove:
			e.rectangles.Update(in.Point)
		case domain.InputDragEnd:
			e.rectangles.Update(in.Point)
			e.rectangles.Finish()
		}

	case domain.ModeFreehand:
		switch in.Type {
		case domain.InputTap:
			e.freehand.HitTest(in.Point)
		case domain.InputDragStart:
			e.freehand.Start()
			e.freehand.AddPoint(in.Point)
		case domain.InputDragMove:
			e.freehand.AddPoint(in.Point)
		case domain.InputDragEnd:
			e.freehand.AddPoint(in.Point)
			e.freehand.Finish()
		}
	}
}

func (e *Editor) handleMarker(in domain.Input) {
	h := in.Handle
	moving := in.Type == domain.InputDragMove || in.Type == domain.InputDragEnd

	switch h.Role {
	case domain.MarkerFirstVertex:
		if in.Type == domain.InputTap {
			e.polygons.HandleFirstMarkerTap()
			return
		}
		if moving {
			e.polygons.UpdatePoint(h.ShapeID, 0, e.snapVertex(h.ShapeID, in.Point, in.Zoom))
		}

	case domain.MarkerVertex:
		if moving {
			e.polygons.UpdatePoint(h.ShapeID, h.Index, e.snapVertex(h.ShapeID, in.Point, in.Zoom))
		}

	case domain.MarkerMidpoint:
		switch {
		case in.Type == domain.InputTap:
			e.polygons.InsertMidpointAsVertex(h.ShapeID, h.Index, in.Point)
		case moving:
			e.polygons.DragEdge(h.ShapeID, h.Edge, in.Point)
		}

	case domain.MarkerCircleCenter:
		if moving {
			e.circles.UpdateCenter(h.ShapeID, in.Point)
		}

	case domain.MarkerCircleRadius:
		if moving {
			e.circles.UpdateRadius(h.ShapeID, in.Point)
		}

	case domain.MarkerRectangleCorner:
		if moving {
			e.rectangles.DragCorner(h.ShapeID, h.Corner, in.Point)
		}
	}
}

// snapVertex pulls p onto the nearest vertex of another polygon when one is
// within the zoom-dependent snap threshold.
func (e *Editor) snapVertex(polygonID string, p domain.GeoPoint, zoom float64) domain.GeoPoint {
	snapped, ok := geospatial.NearestWithin(e.polygons.vertices(polygonID), p, geospatial.SnapThreshold(zoom))
	if !ok {
		return p
	}
	return snapped
}
