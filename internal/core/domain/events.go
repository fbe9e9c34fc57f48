package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the lifecycle step a ShapeEvent reports.
type EventType string

const (
	EventDrawn    EventType = "drawn"
	EventSelected EventType = "selected"
	EventUpdated  EventType = "updated"
	EventDeleted  EventType = "deleted"
)

var EventTypes = []EventType{EventDrawn, EventSelected, EventUpdated, EventDeleted}

// ShapeEvent is a typed domain event. Drawn events carry the full collection
// of their kind, selected and updated carry the single shape, deleted carries
// only the ID.
type ShapeEvent struct {
	Kind       ShapeKind `json:"kind"`
	Type       EventType `json:"type"`
	ID         string    `json:"id,omitempty"`
	Shape      Shape     `json:"shape,omitempty"`
	Collection []Shape   `json:"collection,omitempty"`
	At         time.Time `json:"at"`
}

// ChangeNotice is published after every mutation. Readers re-fetch state.
type ChangeNotice struct {
	Session  string    `json:"session"`
	Revision uint64    `json:"revision"`
	Mode     Mode      `json:"mode"`
	At       time.Time `json:"at"`
}

// DecodeShape unmarshals the JSON form of a shape of the given kind.
func DecodeShape(kind ShapeKind, data []byte) (Shape, error) {
	var (
		s   Shape
		err error
	)
	switch kind {
	case KindPolygon:
		var p Polygon
		err = json.Unmarshal(data, &p)
		s = p
	case KindCircle:
		var c Circle
		err = json.Unmarshal(data, &c)
		s = c
	case KindRectangle:
		var r Rectangle
		err = json.Unmarshal(data, &r)
		s = r
	case KindFreehand:
		var f FreehandPolygon
		err = json.Unmarshal(data, &f)
		s = f
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return s, nil
}
