package services

import (
	"sync"

	"livetrack/internal/core/domain/model/kernel"
)

// NotificationGate suppresses repeated proximity notifications for an order
// while it stays inside the proximity condition. The gate re-arms as soon as
// an update falls outside the condition, so a rider who drives away and
// comes back triggers a second notification.
//
// Safe for concurrent use.
type NotificationGate struct {
	mu       sync.Mutex
	notified map[kernel.UUID]bool
}

// NewNotificationGate creates an empty gate.
func NewNotificationGate() *NotificationGate {
	return &NotificationGate{
		notified: make(map[kernel.UUID]bool),
	}
}

// ShouldFire reports whether a notification should be sent for this update.
// near is the ProximityPolicy decision for the update.
func (g *NotificationGate) ShouldFire(orderID kernel.UUID, near bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !near {
		delete(g.notified, orderID)
		return false
	}

	if g.notified[orderID] {
		return false
	}

	g.notified[orderID] = true
	return true
}

// Clear drops the state for an order; called when the order leaves the
// trackable states.
func (g *NotificationGate) Clear(orderID kernel.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.notified, orderID)
}
