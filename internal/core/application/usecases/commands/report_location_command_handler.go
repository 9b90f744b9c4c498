package commands

import (
	"context"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"
	"livetrack/internal/tracking"
)

// TrackingSnapshot is the caller-facing view of an order's tracking fields
// after a location report was accepted.
type TrackingSnapshot struct {
	OrderID       kernel.UUID
	Status        order.Status
	RiderPosition kernel.GeoPoint
	EtaMinutes    *int
	ReceivedAt    *time.Time
	UpdatedAt     time.Time
}

// ReportLocationCommandHandler validates a rider location report against the
// current order state and hands the accepted update to the coalescer. The
// acknowledgment reflects the accepted values even when the persistent write
// is deferred to the next flush tick.
type ReportLocationCommandHandler struct {
	orderRepo ports.OrderRepository
	coalescer LocationCoalescer
}

// NewReportLocationCommandHandler creates a handler for location reports.
func NewReportLocationCommandHandler(
	orderRepo ports.OrderRepository,
	coalescer LocationCoalescer,
) (ReportLocationCommandHandler, error) {
	if orderRepo == nil {
		return ReportLocationCommandHandler{}, errs.NewValueIsRequiredError("orderRepo")
	}
	if coalescer == nil {
		return ReportLocationCommandHandler{}, errs.NewValueIsRequiredError("coalescer")
	}

	return ReportLocationCommandHandler{
		orderRepo: orderRepo,
		coalescer: coalescer,
	}, nil
}

// Handle processes one location report. Precondition failures (wrong rider,
// untrackable status) surface synchronously; on the immediate path a failed
// order store write surfaces too, while a buffered report acknowledges right
// away and is persisted by the flush loop.
func (h *ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) (TrackingSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return TrackingSnapshot{}, err
	}

	aggregate, err := h.orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return TrackingSnapshot{}, err
	}

	reportedAt := time.Now().UTC()

	// Applied to the in-memory aggregate only: this enforces the rider and
	// status preconditions and yields the snapshot; persistence happens in
	// the applier, immediately or on flush.
	if err = aggregate.RecordRiderPosition(cmd.Actor().UserID, cmd.Position(), cmd.EtaMinutes(), reportedAt); err != nil {
		return TrackingSnapshot{}, err
	}

	update := tracking.Update{
		OrderID:    aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		RiderID:    cmd.Actor().UserID,
		Position:   cmd.Position(),
		EtaMinutes: cmd.EtaMinutes(),
		Delivery:   aggregate.Delivery(),
		ReportedAt: reportedAt,
	}

	if _, err = h.coalescer.Submit(ctx, update); err != nil {
		return TrackingSnapshot{}, err
	}

	return TrackingSnapshot{
		OrderID:       aggregate.ID(),
		Status:        aggregate.Status(),
		RiderPosition: cmd.Position(),
		EtaMinutes:    aggregate.EtaMinutes(),
		ReceivedAt:    aggregate.ReceivedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}, nil
}
