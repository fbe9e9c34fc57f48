package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// Subjects. Shape events go to shapes.<kind>.<type> and are persisted in the
// SHAPE_EVENTS stream; change notices are fire-and-forget.
const (
	StreamShapeEvents = "SHAPE_EVENTS"
	SubjectEvents     = "shapes.*.*"
	SubjectChanged    = "shapes.changed"
	SubjectAll        = "shapes.>"
)

// EventSubject returns the subject a shape event is published on.
func EventSubject(ev domain.ShapeEvent) string {
	return fmt.Sprintf("shapes.%s.%s", ev.Kind, ev.Type)
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return attach(conn, ensureStream)
}

// attach enables JetStream on conn and runs setup. conn is closed when
// either fails.
func attach(conn *nats.Conn, setup func(nats.JetStreamContext) error) (*Publisher, error) {
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := setup(js); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

func ensureStream(js nats.JetStreamContext) error {
	cfg := nats.StreamConfig{
		Name:      StreamShapeEvents,
		Subjects:  []string{SubjectEvents},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

func (p *Publisher) PublishShapeEvent(ctx context.Context, ev domain.ShapeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(EventSubject(ev), data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishChange(ctx context.Context, notice domain.ChangeNotice) error {
	data, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectChanged, data)
}

// Conn exposes the underlying connection for readiness checks.
func (p *Publisher) Conn() *nats.Conn { return p.conn }

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
