package usecases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/usecases"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/geospatial"
)

// --- circles ---

func TestCircle_RadiusEndToEnd(t *testing.T) {
	ed := newEditor()
	r := record(ed)
	center := pt(10, 10)

	c := ed.Circles().Add(center, 15)
	require.Equal(t, 250.0, c.Radius)
	require.Len(t, r.of(domain.KindCircle, domain.EventDrawn), 1)
	assert.Equal(t, c.ID, ed.Circles().Selected())

	ed.Circles().UpdateRadius(c.ID, geospatial.RadiusHandlePosition(center, 500))

	got, _ := ed.Circles().Get(c.ID)
	assert.InDelta(t, 500, got.Radius, 1)
	assert.Equal(t, center, got.Center)
	assert.Len(t, r.of(domain.KindCircle, domain.EventUpdated), 1)
}

func TestCircle_InitialRadiusFollowsZoom(t *testing.T) {
	ed := newEditor()
	assert.Equal(t, 2000.0, ed.Circles().Add(pt(0, 0), 3).Radius)
	assert.Equal(t, 25.0, ed.Circles().Add(pt(0, 0), 20).Radius)
}

func TestCircle_UpdateRadius_RejectsZero(t *testing.T) {
	ed := newEditor()
	c := ed.Circles().Add(pt(10, 10), 15)
	r := record(ed)

	ed.Circles().UpdateRadius(c.ID, c.Center)

	got, _ := ed.Circles().Get(c.ID)
	assert.Equal(t, 250.0, got.Radius)
	assert.Zero(t, r.changes)
}

func TestCircle_UpdateCenter_KeepsRadius(t *testing.T) {
	ed := newEditor()
	c := ed.Circles().Add(pt(10, 10), 15)

	ed.Circles().UpdateCenter(c.ID, pt(11, 11))

	got, _ := ed.Circles().Get(c.ID)
	assert.Equal(t, pt(11, 11), got.Center)
	assert.Equal(t, 250.0, got.Radius)
}

func TestCircle_SelectToggleAndDelete(t *testing.T) {
	ed := newEditor()
	c := ed.Circles().Add(pt(10, 10), 15)
	r := record(ed)

	ed.Select(domain.KindCircle, c.ID)
	assert.Empty(t, ed.Circles().Selected())
	ed.DeleteSelected(domain.KindCircle)
	assert.Len(t, ed.Circles().All(), 1, "nothing selected, nothing deleted")

	ed.Select(domain.KindCircle, c.ID)
	ed.DeleteSelected(domain.KindCircle)
	assert.Empty(t, ed.Circles().All())
	deleted := r.of(domain.KindCircle, domain.EventDeleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, c.ID, deleted[0].ID)
}

// --- rectangles ---

func drawRectangle(t *testing.T, ed *usecases.Editor, from, to domain.GeoPoint) string {
	t.Helper()
	ed.SetMode(domain.ModeRectangle)
	ed.Rectangles().Start(from)
	ed.Rectangles().Update(to)
	ed.Rectangles().Finish()
	all := ed.Rectangles().All()
	require.NotEmpty(t, all)
	return all[len(all)-1].ID
}

func TestRectangle_CornerDragEndToEnd(t *testing.T) {
	ed := newEditor()
	r := record(ed)
	id := drawRectangle(t, ed, pt(0, 0), pt(1, 1))

	drawn := r.of(domain.KindRectangle, domain.EventDrawn)
	require.Len(t, drawn, 1)
	require.Len(t, drawn[0].Collection, 1)

	pos, ok := ed.Rectangles().DragCorner(id, domain.CornerNW, pt(2, -1))
	require.True(t, ok)
	assert.Equal(t, pt(2, -1), pos)

	rect, _ := ed.Rectangles().Get(id)
	assert.Equal(t, pt(0, -1), rect.Bounds.Southwest)
	assert.Equal(t, pt(2, 1), rect.Bounds.Northeast)
}

func TestRectangle_Update_NormalizesEveryQuadrant(t *testing.T) {
	anchor := pt(0, 0)
	for _, to := range []domain.GeoPoint{pt(1, 1), pt(1, -1), pt(-1, 1), pt(-1, -1)} {
		ed := newEditor()
		ed.SetMode(domain.ModeRectangle)
		ed.Rectangles().Start(anchor)
		ed.Rectangles().Update(to)

		rect, ok := ed.Rectangles().Drawing()
		require.True(t, ok)
		b := rect.Bounds
		assert.LessOrEqual(t, b.Southwest.Lat, b.Northeast.Lat, "to %+v", to)
		assert.LessOrEqual(t, b.Southwest.Lon, b.Northeast.Lon, "to %+v", to)
		assert.True(t, b.Contains(anchor))
		assert.True(t, b.Contains(to))
		assert.Equal(t, anchor, rect.Anchor)
	}
}

func TestRectangle_DragCorner_InversionSnapsBack(t *testing.T) {
	ed := newEditor()
	id := drawRectangle(t, ed, pt(0, 0), pt(1, 1))
	r := record(ed)

	pos, ok := ed.Rectangles().DragCorner(id, domain.CornerSW, pt(5, 0))

	assert.False(t, ok)
	assert.Equal(t, pt(0, 0), pos)
	rect, _ := ed.Rectangles().Get(id)
	assert.Equal(t, pt(0, 0), rect.Bounds.Southwest)
	assert.Equal(t, pt(1, 1), rect.Bounds.Northeast)
	assert.Zero(t, r.changes)
}

func TestRectangle_Corners(t *testing.T) {
	ed := newEditor()
	id := drawRectangle(t, ed, pt(0, 0), pt(1, 2))

	corners, ok := ed.Rectangles().Corners(id)
	require.True(t, ok)
	assert.Equal(t, pt(0, 0), corners[domain.CornerSW])
	assert.Equal(t, pt(0, 2), corners[domain.CornerSE])
	assert.Equal(t, pt(1, 2), corners[domain.CornerNE])
	assert.Equal(t, pt(1, 0), corners[domain.CornerNW])
}

func TestRectangle_SelectionOnlyInRectangleMode(t *testing.T) {
	ed := newEditor()
	id := drawRectangle(t, ed, pt(0, 0), pt(1, 1))

	ed.SetMode(domain.ModeCircle)
	ed.Select(domain.KindRectangle, id)
	assert.Empty(t, ed.Rectangles().Selected())

	ed.SetMode(domain.ModeRectangle)
	ed.Select(domain.KindRectangle, id)
	require.Equal(t, id, ed.Rectangles().Selected())

	ed.SetMode(domain.ModeNone)
	ed.DeleteSelected(domain.KindRectangle)
	assert.Len(t, ed.Rectangles().All(), 1)
}

func TestRectangle_HitTestAndDelete(t *testing.T) {
	ed := newEditor()
	id := drawRectangle(t, ed, pt(0, 0), pt(1, 1))

	require.True(t, ed.Rectangles().HitTest(pt(0.5, 0.5)))
	assert.Equal(t, id, ed.Rectangles().Selected())
	ed.DeleteSelected(domain.KindRectangle)
	assert.Empty(t, ed.Rectangles().All())
}

func TestRectangle_StartCommitsPrevious(t *testing.T) {
	ed := newEditor()
	ed.SetMode(domain.ModeRectangle)
	ed.Rectangles().Start(pt(0, 0))
	ed.Rectangles().Update(pt(1, 1))
	r := record(ed)

	ed.Rectangles().Start(pt(5, 5))

	assert.Len(t, ed.Rectangles().All(), 1)
	assert.Equal(t, 1, r.changes)
	_, drawing := ed.Rectangles().Drawing()
	assert.True(t, drawing)
}

// --- freehand ---

func traceFreehand(ed *usecases.Editor, pts ...domain.GeoPoint) {
	ed.SetMode(domain.ModeFreehand)
	ed.Freehand().Start()
	for _, p := range pts {
		ed.Freehand().AddPoint(p)
	}
	ed.Freehand().Finish()
}

func TestFreehand_FinishPromotesLongTrace(t *testing.T) {
	ed := newEditor()
	r := record(ed)

	traceFreehand(ed, pt(0, 0), pt(0, 1), pt(1, 1))

	all := ed.Freehand().All()
	require.Len(t, all, 1)
	assert.Len(t, all[0].Points, 3)
	assert.Equal(t, 2.0, all[0].StrokeWidth)
	assert.Empty(t, ed.Freehand().Trace())
	assert.False(t, ed.Freehand().Drawing())
	assert.Len(t, r.of(domain.KindFreehand, domain.EventDrawn), 1)
}

func TestFreehand_FinishDropsShortTrace(t *testing.T) {
	ed := newEditor()
	r := record(ed)

	traceFreehand(ed, pt(0, 0), pt(0, 1))

	assert.Empty(t, ed.Freehand().All())
	drawn := r.of(domain.KindFreehand, domain.EventDrawn)
	require.Len(t, drawn, 1)
	assert.Empty(t, drawn[0].Collection)
}

func TestFreehand_SelectionWidens(t *testing.T) {
	ed := newEditor()
	traceFreehand(ed, pt(0, 0), pt(0, 2), pt(2, 2), pt(2, 0))
	traceFreehand(ed, pt(5, 5), pt(5, 6), pt(6, 6))
	all := ed.Freehand().All()
	first, second := all[0].ID, all[1].ID

	require.True(t, ed.Freehand().HitTest(pt(1, 1)))
	got, _ := ed.Freehand().Get(first)
	assert.Equal(t, 4.0, got.StrokeWidth)

	snap := ed.Render(domain.IconSet{})
	require.Len(t, snap.Freehand, 2)
	assert.Equal(t, domain.HighlightBlue, snap.Freehand[0].StrokeColor)
	assert.Equal(t, 4.0, snap.Freehand[0].StrokeWidth)
	assert.Equal(t, 2.0, snap.Freehand[1].StrokeWidth)

	ed.Freehand().Select(second)
	got, _ = ed.Freehand().Get(first)
	assert.Equal(t, 2.0, got.StrokeWidth, "previous selection is restored")
	assert.Equal(t, second, ed.Freehand().Selected())

	ed.Freehand().Select(second)
	assert.Empty(t, ed.Freehand().Selected())
}

func TestFreehand_SelectionOnlyInFreehandMode(t *testing.T) {
	ed := newEditor()
	traceFreehand(ed, pt(0, 0), pt(0, 2), pt(2, 2))
	id := ed.Freehand().All()[0].ID

	ed.SetMode(domain.ModeNone)
	ed.Freehand().Select(id)
	assert.Empty(t, ed.Freehand().Selected())
	assert.False(t, ed.Freehand().HitTest(pt(0.5, 1.5)))
}

func TestFreehand_AddPointWithoutStartIsIgnored(t *testing.T) {
	ed := newEditor()
	ed.SetMode(domain.ModeFreehand)

	ed.Freehand().AddPoint(pt(0, 0))

	assert.Empty(t, ed.Freehand().Trace())
}
