package ports

import (
	"context"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates. Each call is a self-contained
// statement; the tracking flow deliberately avoids transactions spanning the
// order store and the track history log.
type OrderRepository interface {
	// Add saves a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update saves an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id; returns an ObjectNotFoundError when the
	// order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
