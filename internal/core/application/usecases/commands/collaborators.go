// Package commands contains business operations that modify system state.
// Handlers validate a constructed command, mutate the order aggregate, persist
// it, and fan out best-effort side effects (track history, broadcast, push).
// Persistence is a single self-contained write per operation; the tracking
// flow never opens transactions spanning the order store and the track log.
package commands

import (
	"context"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/tracking"
)

// LocationCoalescer is the buffering front of the location write path.
// Implemented by tracking.Coalescer.
type LocationCoalescer interface {
	// Submit routes one accepted update; buffered reports are applied on the
	// next flush tick.
	Submit(ctx context.Context, update tracking.Update) (buffered bool, err error)

	// Drop discards buffered state for an order that left the trackable
	// states.
	Drop(orderID kernel.UUID)
}

// ProximityGate suppresses repeated proximity pushes for an order.
// Implemented by services.NotificationGate.
type ProximityGate interface {
	ShouldFire(orderID kernel.UUID, near bool) bool
	Clear(orderID kernel.UUID)
}
