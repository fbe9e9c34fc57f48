package domain

import "errors"

var (
	ErrInvertedBounds = errors.New("southwest corner must not exceed northeast corner")
	ErrUnknownCorner  = errors.New("unknown rectangle corner")
	ErrUnknownKind    = errors.New("unknown shape kind")
	ErrUnknownMode    = errors.New("unknown drawing mode")
	ErrInvalidColor   = errors.New("invalid color")
)
