package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	durable string
	subs    []*nats.Subscription
}

// NewSubscriber connects to NATS. durable names the JetStream consumer so a
// restarted subscriber resumes where it left off.
func NewSubscriber(url, durable string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js, durable: durable}, nil
}

func (s *Subscriber) SubscribeShapeEvents(ctx context.Context, handler func(ctx context.Context, ev domain.ShapeEvent) error) error {
	sub, err := s.js.Subscribe(SubjectEvents, func(msg *nats.Msg) {
		ev, err := DecodeEvent(msg.Data)
		if err != nil {
			// Redelivery cannot fix a malformed payload.
			_ = msg.Term()
			return
		}
		if err := handler(ctx, ev); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(s.durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
		nats.AckWait(30*time.Second),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *Subscriber) SubscribeChanges(ctx context.Context, handler func(ctx context.Context, notice domain.ChangeNotice) error) error {
	sub, err := s.conn.Subscribe(SubjectChanged, func(msg *nats.Msg) {
		var notice domain.ChangeNotice
		if err := json.Unmarshal(msg.Data, &notice); err != nil {
			return
		}
		_ = handler(ctx, notice)
	})
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}

// wireEvent is the JSON layout of a published ShapeEvent. Shapes stay raw
// until the kind is known.
type wireEvent struct {
	Kind       domain.ShapeKind  `json:"kind"`
	Type       domain.EventType  `json:"type"`
	ID         string            `json:"id,omitempty"`
	Shape      json.RawMessage   `json:"shape,omitempty"`
	Collection []json.RawMessage `json:"collection,omitempty"`
	At         time.Time         `json:"at"`
}

// DecodeEvent parses a message published by Publisher.PublishShapeEvent.
func DecodeEvent(data []byte) (domain.ShapeEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.ShapeEvent{}, fmt.Errorf("unmarshal shape event: %w", err)
	}
	ev := domain.ShapeEvent{Kind: w.Kind, Type: w.Type, ID: w.ID, At: w.At}

	if len(w.Shape) > 0 && string(w.Shape) != "null" {
		shape, err := domain.DecodeShape(w.Kind, w.Shape)
		if err != nil {
			return domain.ShapeEvent{}, err
		}
		ev.Shape = shape
	}
	for _, raw := range w.Collection {
		shape, err := domain.DecodeShape(w.Kind, raw)
		if err != nil {
			return domain.ShapeEvent{}, err
		}
		ev.Collection = append(ev.Collection, shape)
	}
	return ev, nil
}
