package commands

import (
	"context"
	"log/slog"
	"time"

	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies lifecycle transitions to an order.
// The order store write is the primary effect; the status broadcast is
// fire-and-forget. When a transition ends live tracking, buffered location
// state for the order is discarded.
type ChangeOrderStatusCommandHandler struct {
	orderRepo   ports.OrderRepository
	broadcaster ports.Broadcaster
	coalescer   LocationCoalescer
	gate        ProximityGate
	log         *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(
	orderRepo ports.OrderRepository,
	broadcaster ports.Broadcaster,
	coalescer LocationCoalescer,
	gate ProximityGate,
	log *slog.Logger,
) (ChangeOrderStatusCommandHandler, error) {
	if orderRepo == nil {
		return ChangeOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("orderRepo")
	}
	if broadcaster == nil {
		return ChangeOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("broadcaster")
	}
	if coalescer == nil {
		return ChangeOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("coalescer")
	}
	if gate == nil {
		return ChangeOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("gate")
	}
	if log == nil {
		return ChangeOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("log")
	}

	return ChangeOrderStatusCommandHandler{
		orderRepo:   orderRepo,
		broadcaster: broadcaster,
		coalescer:   coalescer,
		gate:        gate,
		log:         log.With("component", "change_order_status_handler"),
	}, nil
}

// Handle processes the status-change command. Authorization and transition
// legality are enforced by the aggregate; the returned errors carry the errs
// sentinels the transport layer maps to status codes.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.applyTransition(aggregate, cmd); err != nil {
		return err
	}

	if err = h.orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if !aggregate.Status().IsTrackable() {
		h.coalescer.Drop(aggregate.ID())
		h.gate.Clear(aggregate.ID())
	}

	h.broadcaster.PublishOrderStatus(ports.StatusEvent{
		OrderID:    aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		Status:     aggregate.Status(),
		Timestamp:  time.Now().UTC(),
	})

	return nil
}

func (h *ChangeOrderStatusCommandHandler) applyTransition(aggregate *order.Order, cmd ChangeOrderStatusCommand) error {
	actor := cmd.Actor().UserID

	switch cmd.Target() {
	case order.Accepted:
		// Accepting self-assigns the actor as the order's rider, so only
		// the rider role may do it; a customer accepting their own order
		// would bypass every assigned-rider guard downstream.
		if cmd.Actor().Role != ports.RoleRider {
			return errs.NewNotAuthorizedError(actor.String(), "accept order")
		}
		return aggregate.Accept(actor)
	case order.Pickup:
		return aggregate.MarkPickup(actor)
	case order.InTransit:
		return aggregate.MarkInTransit(actor)
	case order.Delivered:
		return aggregate.MarkDelivered(actor)
	case order.Cancelled:
		return aggregate.Cancel(actor)
	case order.Rated:
		return aggregate.Rate(actor)
	default:
		return errs.NewInvalidStateError("change order status", cmd.Target().String())
	}
}
