package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/metrics"
)

func newTestAuditor() (*auditor, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return newAuditor(logger), &buf
}

func TestAuditor_HandleEventCounts(t *testing.T) {
	a, buf := newTestAuditor()
	counter := metrics.EventsAudited.WithLabelValues("circle", "drawn")
	before := testutil.ToFloat64(counter)

	ev := domain.ShapeEvent{Kind: domain.KindCircle, Type: domain.EventDrawn, ID: "c1", At: time.Now()}
	assert.NoError(t, a.handleEvent(context.Background(), ev))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Contains(t, buf.String(), "id=c1")
}

func TestAuditor_HandleChangeDetectsGaps(t *testing.T) {
	a, buf := newTestAuditor()
	ctx := context.Background()

	_ = a.handleChange(ctx, domain.ChangeNotice{Session: "s1", Revision: 1})
	_ = a.handleChange(ctx, domain.ChangeNotice{Session: "s1", Revision: 2})
	assert.NotContains(t, buf.String(), "level=WARN")

	_ = a.handleChange(ctx, domain.ChangeNotice{Session: "s1", Revision: 5})
	assert.Contains(t, buf.String(), "change notices skipped")

	_ = a.handleChange(ctx, domain.ChangeNotice{Session: "s1", Revision: 3})
	assert.Contains(t, buf.String(), "stale change notice")
	assert.Equal(t, uint64(3), a.lastRevision())

	// Another session starts its own sequence.
	buf.Reset()
	_ = a.handleChange(ctx, domain.ChangeNotice{Session: "s2", Revision: 7})
	assert.False(t, strings.Contains(buf.String(), "level=WARN"))
}
