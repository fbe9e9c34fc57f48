package http

import (
	"testing"

	natsadapter "github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/nats"
)

func TestWSSubject(t *testing.T) {
	tests := []struct {
		msg     wsMessage
		subject string
		ok      bool
	}{
		{wsMessage{Channel: "all"}, natsadapter.SubjectAll, true},
		{wsMessage{Channel: ""}, natsadapter.SubjectEvents, true},
		{wsMessage{Channel: "events"}, natsadapter.SubjectEvents, true},
		{wsMessage{Channel: "events", Kind: "Circles"}, "shapes.circle.*", true},
		{wsMessage{Channel: "events", Kind: "hexagon"}, "", false},
		{wsMessage{Channel: "changes"}, natsadapter.SubjectChanged, true},
		{wsMessage{Channel: "vehicles"}, "", false},
	}
	for _, tt := range tests {
		subject, ok := wsSubject(tt.msg)
		if subject != tt.subject || ok != tt.ok {
			t.Errorf("wsSubject(%+v) = %q, %v; want %q, %v", tt.msg, subject, ok, tt.subject, tt.ok)
		}
	}
}
