package http

import (
	"github.com/nats-io/nats.go"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/valkey"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Session     *usecases.SessionService
	Interchange *usecases.InterchangeService
	NATS        *nats.Conn
	Cache       *valkey.Cache
}
