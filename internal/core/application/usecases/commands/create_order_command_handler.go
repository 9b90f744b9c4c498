package commands

import (
	"context"
	"log/slog"
	"time"

	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order creation. The new order starts in
// pending status and is announced to connected dispatch managers.
type CreateOrderCommandHandler struct {
	orderRepo   ports.OrderRepository
	broadcaster ports.Broadcaster
	log         *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	orderRepo ports.OrderRepository,
	broadcaster ports.Broadcaster,
	log *slog.Logger,
) (CreateOrderCommandHandler, error) {
	if orderRepo == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("orderRepo")
	}
	if broadcaster == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("broadcaster")
	}
	if log == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("log")
	}

	return CreateOrderCommandHandler{
		orderRepo:   orderRepo,
		broadcaster: broadcaster,
		log:         log.With("component", "create_order_handler"),
	}, nil
}

// Handle processes the order creation command. The repository write is the
// primary effect; the broadcast is fire-and-forget.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.Delivery())
	if err != nil {
		return err
	}

	if err = h.orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	h.broadcaster.PublishOrderStatus(ports.StatusEvent{
		OrderID:    aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		Status:     aggregate.Status(),
		Timestamp:  time.Now().UTC(),
	})

	return nil
}
