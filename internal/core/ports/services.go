package ports

import (
	"context"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// EventPublisher publishes editor events to a message broker.
type EventPublisher interface {
	PublishShapeEvent(ctx context.Context, ev domain.ShapeEvent) error
	PublishChange(ctx context.Context, notice domain.ChangeNotice) error
}

// EventSubscriber subscribes to editor events from a message broker.
type EventSubscriber interface {
	SubscribeShapeEvents(ctx context.Context, handler func(ctx context.Context, ev domain.ShapeEvent) error) error
	SubscribeChanges(ctx context.Context, handler func(ctx context.Context, notice domain.ChangeNotice) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// InterchangeCodec converts a set of shapes to and from a document format.
type InterchangeCodec interface {
	Encode(set domain.ShapeSet) ([]byte, error)
	Decode(data []byte) (domain.ShapeSet, error)
	ContentType() string
}
