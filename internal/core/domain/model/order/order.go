package order

import (
	"errors"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a delivery order and its live tracking
// state.
//
// Invariants:
//   - a rider is assigned exactly while status is accepted through rated
//   - rider position and ETA are only mutated in a trackable status
//   - receivedAt is set once, at the first accepted location report
//   - status only moves along the forward edges of the state machine
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	// riderID is nil until a rider accepts the order.
	riderID *kernel.UUID

	status Status

	// delivery is the destination, set at creation when known.
	delivery *kernel.GeoPoint

	// riderPosition is the last accepted rider location report.
	riderPosition *kernel.GeoPoint
	etaMinutes    *int

	// receivedAt is the time of the first location report. Write-once.
	receivedAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a pending order for a customer. The delivery destination
// may be nil when the checkout flow has no geocoded address yet.
func NewOrder(id, customerID kernel.UUID, delivery *kernel.GeoPoint) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDelivery(delivery),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It revalidates the
// identifier and the status/rider consistency so corrupt rows surface as
// errors instead of broken aggregates.
func RestoreOrder(
	id, customerID kernel.UUID,
	riderID *kernel.UUID,
	status Status,
	delivery, riderPosition *kernel.GeoPoint,
	etaMinutes *int,
	receivedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        status,
		riderID:       riderID,
		riderPosition: riderPosition,
		etaMinutes:    etaMinutes,
		receivedAt:    receivedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDelivery(delivery),
		status.Validate(),
		status.validateRiderConsistency(riderID != nil),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RiderID returns the assigned rider's identifier, or nil before acceptance.
func (o *Order) RiderID() *kernel.UUID {
	return o.riderID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Delivery returns the delivery destination, or nil when unknown.
func (o *Order) Delivery() *kernel.GeoPoint {
	return o.delivery
}

// RiderPosition returns the last accepted rider location, or nil before the
// first report.
func (o *Order) RiderPosition() *kernel.GeoPoint {
	return o.riderPosition
}

// EtaMinutes returns the last reported ETA in minutes, or nil.
func (o *Order) EtaMinutes() *int {
	return o.etaMinutes
}

// ReceivedAt returns the time of the first location report, or nil.
func (o *Order) ReceivedAt() *time.Time {
	return o.receivedAt
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Accept assigns the order to a rider and moves it to accepted.
func (o *Order) Accept(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Accepted)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.riderID = &riderID
	o.touch()
	return nil
}

// MarkPickup moves the order to pickup. Only the assigned rider may advance
// the delivery flow.
func (o *Order) MarkPickup(actor kernel.UUID) error {
	return o.advance(actor, Pickup)
}

// MarkInTransit moves the order to in_transit.
func (o *Order) MarkInTransit(actor kernel.UUID) error {
	return o.advance(actor, InTransit)
}

// MarkDelivered moves the order to delivered; live tracking ends here.
func (o *Order) MarkDelivered(actor kernel.UUID) error {
	return o.advance(actor, Delivered)
}

// Cancel moves the order to cancelled. Only the owning customer may cancel,
// and only from pending or accepted. A rider assigned before cancellation is
// released.
func (o *Order) Cancel(actor kernel.UUID) error {
	if !actor.IsEqual(o.customerID) {
		return errs.NewNotAuthorizedError(actor.String(), "cancel order")
	}

	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.riderID = nil
	o.touch()
	return nil
}

// Rate records the customer's rating of a delivered order. A second rating
// attempt fails because rated has no outgoing edges.
func (o *Order) Rate(actor kernel.UUID) error {
	if !actor.IsEqual(o.customerID) {
		return errs.NewNotAuthorizedError(actor.String(), "rate order")
	}

	newStatus, err := o.status.TransitionTo(Rated)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// RecordRiderPosition applies an accepted location report: it updates the
// rider position, overwrites the ETA when one was supplied, sets receivedAt
// on the first report only, and bumps updatedAt.
//
// The actor must be the assigned rider and the order must be in a trackable
// status.
func (o *Order) RecordRiderPosition(actor kernel.UUID, position kernel.GeoPoint, etaMinutes *int, reportedAt time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	if o.riderID == nil || !actor.IsEqual(*o.riderID) {
		return errs.NewNotAuthorizedError(actor.String(), "report location")
	}

	if !o.status.IsTrackable() {
		return errs.NewInvalidStateError("report location", o.status.String())
	}

	o.riderPosition = &position
	if etaMinutes != nil {
		eta := *etaMinutes
		o.etaMinutes = &eta
	}
	if o.receivedAt == nil {
		receivedAt := reportedAt
		o.receivedAt = &receivedAt
	}
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) advance(actor kernel.UUID, target Status) error {
	if o.riderID == nil || !actor.IsEqual(*o.riderID) {
		return errs.NewNotAuthorizedError(actor.String(), "advance order status")
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setDelivery(delivery *kernel.GeoPoint) error {
	if delivery == nil {
		return nil
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}
