// Package queries contains the read side: handlers that project order and
// tracking state straight from the database, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders still in flight: pending,
// accepted, pickup or in_transit. Feeds the dispatch manager board.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates the parameterless active-orders query.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one active order row on the manager board.
type GetActiveOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	RiderID       *kernel.UUID
	Status        order.Status
	RiderPosition *kernel.GeoPoint
	EtaMinutes    *int
	UpdatedAt     time.Time
}
