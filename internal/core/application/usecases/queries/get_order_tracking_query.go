package queries

import (
	"errors"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the live tracking projection of one order,
// filtered by the caller's role: customers see only their own orders, riders
// only orders assigned to them, staff any order. An order outside the
// caller's view reads as not found.
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   ports.Identity

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates an order-tracking query.
func NewGetOrderTrackingQuery(orderID kernel.UUID, actor ports.Identity) (GetOrderTrackingQuery, error) {
	query := GetOrderTrackingQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setActor(actor),
	); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the authenticated caller.
func (q GetOrderTrackingQuery) Actor() ports.Identity {
	return q.actor
}

func (q *GetOrderTrackingQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderTrackingQuery) setActor(actor ports.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

// GetOrderTrackingQueryResponse is the live tracking view of an order.
type GetOrderTrackingQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	RiderID       *kernel.UUID
	Status        order.Status
	Delivery      *kernel.GeoPoint
	RiderPosition *kernel.GeoPoint
	EtaMinutes    *int
	ReceivedAt    *time.Time
	UpdatedAt     time.Time
}
