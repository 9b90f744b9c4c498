package ports

import (
	"context"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/track"
)

// TrackRepository is the append-only location history log.
type TrackRepository interface {
	// Append inserts one track point. Callers treat failures as best-effort:
	// they log and continue, never failing the primary operation.
	Append(ctx context.Context, point track.Point) error

	// History returns an order's track points in ascending recorded-at
	// order. An order without points yields an empty slice, not an error.
	History(ctx context.Context, orderID kernel.UUID) ([]track.Point, error)
}
