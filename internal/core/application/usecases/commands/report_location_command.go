package commands

import (
	"errors"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"
	"livetrack/internal/pkg/guard"
)

// maxEtaMinutes rejects nonsense ETA values from rider clients; one day is
// far beyond any deliverable order.
const maxEtaMinutes = 24 * 60

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents one rider location report for an order.
// The ETA is optional: omitting it keeps the order's previous value.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      ports.Identity
	position   kernel.GeoPoint
	etaMinutes *int

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a location-report command.
func NewReportLocationCommand(
	orderID kernel.UUID,
	actor ports.Identity,
	position kernel.GeoPoint,
	etaMinutes *int,
) (ReportLocationCommand, error) {
	cmd := ReportLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setPosition(position),
		cmd.setEtaMinutes(etaMinutes),
	); err != nil {
		return ReportLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// OrderID returns the order being tracked.
func (c ReportLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the authenticated identity reporting the location.
func (c ReportLocationCommand) Actor() ports.Identity {
	return c.actor
}

// Position returns the reported rider position.
func (c ReportLocationCommand) Position() kernel.GeoPoint {
	return c.position
}

// EtaMinutes returns the reported ETA, or nil when omitted.
func (c ReportLocationCommand) EtaMinutes() *int {
	return c.etaMinutes
}

func (c *ReportLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportLocationCommand) setActor(actor ports.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ReportLocationCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}

func (c *ReportLocationCommand) setEtaMinutes(etaMinutes *int) error {
	if etaMinutes == nil {
		return nil
	}
	if *etaMinutes < 0 || *etaMinutes > maxEtaMinutes {
		return errs.NewValueIsOutOfRangeError("etaMinutes", *etaMinutes, 0, maxEtaMinutes)
	}

	eta := *etaMinutes
	c.etaMinutes = &eta
	return nil
}
