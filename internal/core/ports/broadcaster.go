package ports

import (
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
)

// LocationEvent is a rider position change fanned out to tracking subscribers.
type LocationEvent struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	Position   kernel.GeoPoint
	EtaMinutes *int
	Timestamp  time.Time
}

// StatusEvent is an order status change fanned out to tracking subscribers
// and to the customer's personal room.
type StatusEvent struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	Status     order.Status
	Timestamp  time.Time
}

// Broadcaster fans events out to connected websocket clients. Publishing is
// fire-and-forget: slow or absent subscribers never block or fail the caller.
type Broadcaster interface {
	PublishRiderLocation(event LocationEvent)
	PublishOrderStatus(event StatusEvent)
}
