package commands

import (
	"context"
	"fmt"
	"log/slog"

	"livetrack/internal/core/domain/model/track"
	"livetrack/internal/core/domain/services"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"
	"livetrack/internal/tracking"
)

// LocationUpdateApplier performs the write path for one accepted location
// update: order store write (primary), track point append, proximity push and
// broadcast fan-out (all best-effort). The coalescer invokes it on the
// immediate path and on every flush tick.
type LocationUpdateApplier struct {
	orderRepo   ports.OrderRepository
	trackRepo   ports.TrackRepository
	broadcaster ports.Broadcaster
	pusher      ports.PushDispatcher
	policy      services.ProximityPolicy
	gate        ProximityGate

	// notifyRepeat re-fires the proximity push on every qualifying update
	// instead of once per approach.
	notifyRepeat bool

	log *slog.Logger
}

// NewLocationUpdateApplier creates the applier.
func NewLocationUpdateApplier(
	orderRepo ports.OrderRepository,
	trackRepo ports.TrackRepository,
	broadcaster ports.Broadcaster,
	pusher ports.PushDispatcher,
	policy services.ProximityPolicy,
	gate ProximityGate,
	notifyRepeat bool,
	log *slog.Logger,
) (*LocationUpdateApplier, error) {
	if orderRepo == nil {
		return nil, errs.NewValueIsRequiredError("orderRepo")
	}
	if trackRepo == nil {
		return nil, errs.NewValueIsRequiredError("trackRepo")
	}
	if broadcaster == nil {
		return nil, errs.NewValueIsRequiredError("broadcaster")
	}
	if pusher == nil {
		return nil, errs.NewValueIsRequiredError("pusher")
	}
	if gate == nil {
		return nil, errs.NewValueIsRequiredError("gate")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	return &LocationUpdateApplier{
		orderRepo:    orderRepo,
		trackRepo:    trackRepo,
		broadcaster:  broadcaster,
		pusher:       pusher,
		policy:       policy,
		gate:         gate,
		notifyRepeat: notifyRepeat,
		log:          log.With("component", "location_update_applier"),
	}, nil
}

// Apply writes one update. It reloads the order so a status change between
// buffering and flush is caught: a no-longer-trackable order rejects the
// sample. Only the order store write can fail the call; every later effect
// is logged and swallowed.
func (a *LocationUpdateApplier) Apply(ctx context.Context, update tracking.Update) error {
	aggregate, err := a.orderRepo.Get(ctx, update.OrderID)
	if err != nil {
		return err
	}

	if err = aggregate.RecordRiderPosition(update.RiderID, update.Position, update.EtaMinutes, update.ReportedAt); err != nil {
		return err
	}

	if err = a.orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	a.appendTrackPoint(ctx, update)
	a.notifyIfNearby(ctx, aggregate.EtaMinutes(), update)

	a.broadcaster.PublishRiderLocation(ports.LocationEvent{
		OrderID:    update.OrderID,
		CustomerID: update.CustomerID,
		Position:   update.Position,
		EtaMinutes: aggregate.EtaMinutes(),
		Timestamp:  update.ReportedAt,
	})

	return nil
}

func (a *LocationUpdateApplier) appendTrackPoint(ctx context.Context, update tracking.Update) {
	point, err := track.NewPoint(update.OrderID, update.Position, update.ReportedAt)
	if err == nil {
		err = a.trackRepo.Append(ctx, point)
	}
	if err != nil {
		a.log.Error("track point append failed",
			"order_id", update.OrderID.String(),
			"error", err)
	}
}

func (a *LocationUpdateApplier) notifyIfNearby(ctx context.Context, etaMinutes *int, update tracking.Update) {
	near := a.policy.ShouldNotify(etaMinutes, update.Position, update.Delivery)

	fire := near
	if !a.notifyRepeat {
		fire = a.gate.ShouldFire(update.OrderID, near)
	}
	if !fire {
		return
	}

	notification := ports.Notification{
		Title: "Your rider is nearby",
		Body:  nearbyBody(etaMinutes),
	}

	if err := a.pusher.Send(ctx, update.CustomerID, notification); err != nil {
		a.log.Error("proximity push dispatch failed",
			"order_id", update.OrderID.String(),
			"customer_id", update.CustomerID.String(),
			"error", err)
	}
}

func nearbyBody(etaMinutes *int) string {
	if etaMinutes == nil {
		return "Your delivery is arriving soon."
	}
	if *etaMinutes <= 1 {
		return "Your delivery is about a minute away."
	}
	return fmt.Sprintf("Your delivery is about %d minutes away.", *etaMinutes)
}

var _ tracking.Applier = (*LocationUpdateApplier)(nil)
