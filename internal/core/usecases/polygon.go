package usecases

import (
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

// PolygonController builds polygons vertex by vertex. The polygon being
// authored sits in the store from its first point on, together with a shadow
// polyline sharing its ID, and is finalized when the ring is closed.
type PolygonController struct {
	ed       *Editor
	store    *Store[domain.Polygon]
	lines    *Store[domain.Polyline]
	active   string
	selected string
}

// Active returns the ID of the polygon being authored, if any.
func (c *PolygonController) Active() string { return c.active }

func (c *PolygonController) Selected() string { return c.selected }

// All returns every stored polygon, including one still being authored.
func (c *PolygonController) All() []domain.Polygon {
	out := c.store.All()
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// Finalized returns the stored polygons minus the one being authored.
func (c *PolygonController) Finalized() []domain.Polygon {
	all := c.store.All()
	out := make([]domain.Polygon, 0, len(all))
	for _, p := range all {
		if p.ID != c.active {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (c *PolygonController) Get(id string) (domain.Polygon, bool) {
	p, ok := c.store.Get(id)
	return p.Clone(), ok
}

// Polyline returns the shadow of the polygon being authored.
func (c *PolygonController) Polyline() (domain.Polyline, bool) {
	if c.active == "" {
		return domain.Polyline{}, false
	}
	l, ok := c.lines.Get(c.active)
	l.Points = append([]domain.GeoPoint(nil), l.Points...)
	return l, ok
}

func (c *PolygonController) enabled() bool {
	return c.ed.mode == domain.ModePolygon
}

// AddPoint starts a polygon or extends the one being authored. A tap within
// the close threshold of the first vertex closes the ring once the polygon
// has more than two distinct points.
func (c *PolygonController) AddPoint(p domain.GeoPoint) {
	if !c.enabled() {
		return
	}

	if c.active == "" {
		c.start(p)
		return
	}

	poly, ok := c.store.Get(c.active)
	if !ok {
		c.active = ""
		c.start(p)
		return
	}

	if distinctCount(poly.Points) > 2 &&
		geospatial.Distance(p, poly.Points[0]) <= c.ed.cfg.CloseThresholdMeters {
		c.appendPoint(poly, poly.Points[0])
		c.Finish()
		return
	}

	c.appendPoint(poly, p)
	c.ed.notify()
}

func (c *PolygonController) start(p domain.GeoPoint) {
	id := c.ed.newID()
	c.store.Add(domain.Polygon{
		ID:          id,
		Points:      []domain.GeoPoint{p},
		StrokeColor: c.ed.color,
		FillColor:   c.ed.color.Fill(),
		StrokeWidth: c.ed.cfg.StrokeWidth,
	})
	c.lines.Add(domain.Polyline{ID: id, Points: []domain.GeoPoint{p}, Color: c.ed.color})
	c.active = id
	c.selected = id
	c.ed.notify()
}

func (c *PolygonController) appendPoint(poly domain.Polygon, p domain.GeoPoint) {
	next := poly.Clone()
	next.Points = append(next.Points, p)
	c.store.Replace(next)
	c.syncLine(next)
}

func (c *PolygonController) syncLine(poly domain.Polygon) {
	line, ok := c.lines.Get(poly.ID)
	if !ok {
		return
	}
	line.Points = append([]domain.GeoPoint(nil), poly.Points...)
	c.lines.Replace(line)
}

// HandleFirstMarkerTap closes the ring when the host renders a dedicated
// close marker on the first vertex.
func (c *PolygonController) HandleFirstMarkerTap() {
	if !c.enabled() || c.active == "" {
		return
	}
	poly, ok := c.store.Get(c.active)
	if !ok || distinctCount(poly.Points) <= 2 {
		return
	}
	c.appendPoint(poly, poly.Points[0])
	c.Finish()
}

// Finish finalizes the polygon being authored when it has at least three
// distinct points: it takes the current drawing color, becomes selected and
// loses its shadow polyline. The drawn event and a change notification are
// sent either way.
func (c *PolygonController) Finish() {
	if poly, ok := c.store.Get(c.active); ok && c.active != "" && distinctCount(poly.Points) >= 3 {
		next := poly.Clone()
		next.StrokeColor = c.ed.color
		next.FillColor = c.ed.color.Fill()
		c.store.Replace(next)
		c.lines.Remove(next.ID)
		c.active = ""
		c.selected = next.ID
	}

	c.ed.emit(domain.ShapeEvent{
		Kind:       domain.KindPolygon,
		Type:       domain.EventDrawn,
		Collection: shapes(c.Finalized()),
	})
	c.ed.notify()
}

// forceFinish finalizes or discards the polygon being authored.
func (c *PolygonController) forceFinish() {
	if c.active == "" {
		return
	}
	poly, ok := c.store.Get(c.active)
	if ok && distinctCount(poly.Points) >= 3 {
		c.Finish()
		return
	}
	c.ed.logger.Debug("discarding degenerate polygon", "id", c.active, "points", len(poly.Points))
	c.store.Remove(c.active)
	c.lines.Remove(c.active)
	if c.selected == c.active {
		c.selected = ""
	}
	c.active = ""
	c.ed.notify()
}

// UpdatePoint moves one vertex. On a closed ring the first and last points
// move together.
func (c *PolygonController) UpdatePoint(id string, index int, p domain.GeoPoint) {
	if !c.enabled() {
		return
	}
	poly, ok := c.store.Get(id)
	if !ok || index < 0 || index >= len(poly.Points) {
		return
	}

	closed := poly.IsClosed()
	next := poly.Clone()
	next.Points[index] = p
	if closed {
		last := len(next.Points) - 1
		switch index {
		case 0:
			next.Points[last] = p
		case last:
			next.Points[0] = p
		}
	}
	c.commitEdit(next)
}

// InsertMidpointAsVertex promotes a midpoint handle to a real vertex at
// index. On a closed ring the closing point cannot be displaced.
func (c *PolygonController) InsertMidpointAsVertex(id string, index int, p domain.GeoPoint) {
	if !c.enabled() {
		return
	}
	poly, ok := c.store.Get(id)
	if !ok {
		return
	}
	n := len(poly.Points)
	lo, hi := 0, n
	if poly.IsClosed() {
		lo, hi = 1, n-1
	}
	if index < lo || index > hi {
		return
	}

	pts := make([]domain.GeoPoint, 0, n+1)
	pts = append(pts, poly.Points[:index]...)
	pts = append(pts, p)
	pts = append(pts, poly.Points[index:]...)

	next := poly
	next.Points = pts
	c.commitEdit(next)
}

// UpdateMidpointPosition drags the edge spanning vertices edgeIndex-1 and
// edgeIndex+1 (ring-wrapped): the offset from that span's midpoint to p is
// halved and applied to both ends. Vertex edgeIndex itself stays put and
// no vertex is added or removed.
func (c *PolygonController) UpdateMidpointPosition(id string, edgeIndex int, p domain.GeoPoint) {
	c.shiftPair(id, edgeIndex, func(n int) (int, int) {
		return (edgeIndex - 1 + n) % n, (edgeIndex + 1) % n
	}, p)
}

// DragEdge reshapes the edge from vertex edge to vertex edge+1 (ring-wrapped)
// the same way: both endpoints move by half the offset from the edge's
// midpoint to p. This is what dragging a rendered midpoint marker does.
func (c *PolygonController) DragEdge(id string, edge int, p domain.GeoPoint) {
	c.shiftPair(id, edge, func(n int) (int, int) {
		return edge, (edge + 1) % n
	}, p)
}

func (c *PolygonController) shiftPair(id string, index int, pair func(n int) (int, int), p domain.GeoPoint) {
	if !c.enabled() {
		return
	}
	poly, ok := c.store.Get(id)
	if !ok {
		return
	}

	closed := poly.IsClosed()
	pts := append([]domain.GeoPoint(nil), geospatial.DistinctRing(poly.Points)...)
	n := len(pts)
	if n < 3 || index < 0 || index >= n {
		return
	}

	a, b := pair(n)
	mid := geospatial.Midpoint(pts[a], pts[b])
	dLat, dLon := (p.Lat-mid.Lat)/2, (p.Lon-mid.Lon)/2
	pts[a] = geospatial.Offset(pts[a], dLat, dLon)
	pts[b] = geospatial.Offset(pts[b], dLat, dLon)
	if closed {
		pts = append(pts, pts[0])
	}

	next := poly
	next.Points = pts
	c.commitEdit(next)
}

func (c *PolygonController) commitEdit(next domain.Polygon) {
	c.store.Replace(next)
	c.syncLine(next)
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindPolygon,
		Type:  domain.EventUpdated,
		ID:    next.ID,
		Shape: next.Clone(),
	})
	c.ed.notify()
}

// HitTest selects the first finalized polygon containing p, in store order.
// A miss clears the selection.
func (c *PolygonController) HitTest(p domain.GeoPoint) bool {
	if !c.enabled() {
		return false
	}
	for _, poly := range c.store.All() {
		if poly.ID == c.active {
			continue
		}
		if geospatial.ContainsPoint(poly.Points, p) {
			c.setSelected(poly)
			return true
		}
	}
	c.Deselect()
	return false
}

// Select toggles: selecting the selected polygon deselects it.
func (c *PolygonController) Select(id string) {
	poly, ok := c.store.Get(id)
	if !ok {
		return
	}
	if c.selected == id {
		c.Deselect()
		return
	}
	c.setSelected(poly)
}

func (c *PolygonController) setSelected(poly domain.Polygon) {
	if c.selected == poly.ID {
		return
	}
	c.selected = poly.ID
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindPolygon,
		Type:  domain.EventSelected,
		ID:    poly.ID,
		Shape: poly.Clone(),
	})
	c.ed.notify()
}

func (c *PolygonController) Deselect() {
	if c.selected == "" {
		return
	}
	c.selected = ""
	c.ed.notify()
}

// Delete removes the selected polygon. Without a selection it does nothing.
func (c *PolygonController) Delete() {
	id := c.selected
	if id == "" {
		return
	}
	c.selected = ""
	if !c.store.Remove(id) {
		return
	}
	if id == c.active {
		c.lines.Remove(id)
		c.active = ""
	}
	c.ed.emit(domain.ShapeEvent{Kind: domain.KindPolygon, Type: domain.EventDeleted, ID: id})
	c.ed.notify()
}

// SetColor recolors a polygon: solid stroke, translucent fill.
func (c *PolygonController) SetColor(id string, col domain.Color) {
	poly, ok := c.store.Get(id)
	if !ok {
		return
	}
	next := poly.Clone()
	next.StrokeColor = col
	next.FillColor = col.Fill()
	c.store.Replace(next)
	c.ed.emit(domain.ShapeEvent{
		Kind:  domain.KindPolygon,
		Type:  domain.EventUpdated,
		ID:    id,
		Shape: next.Clone(),
	})
	c.ed.notify()
}

// vertices returns every vertex of every finalized polygon except skip.
func (c *PolygonController) vertices(skip string) []domain.GeoPoint {
	var out []domain.GeoPoint
	for _, poly := range c.store.All() {
		if poly.ID == skip || poly.ID == c.active {
			continue
		}
		out = append(out, poly.Points...)
	}
	return out
}

func (c *PolygonController) add(p domain.Polygon) {
	c.store.Add(p)
}

func distinctCount(pts []domain.GeoPoint) int {
	seen := make(map[domain.GeoPoint]struct{}, len(pts))
	for _, p := range pts {
		seen[p] = struct{}{}
	}
	return len(seen)
}
