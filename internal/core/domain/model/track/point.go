// Package track contains the append-only location history model. A Point is
// one persisted location sample of an order's delivery path; points are never
// updated and are removed only when the owning order is deleted.
package track

import (
	"errors"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/pkg/errs"
)

// Point is a single location sample of an order's delivery path.
type Point struct {
	OrderID    kernel.UUID
	Position   kernel.GeoPoint
	RecordedAt time.Time
}

// NewPoint creates a validated track point.
func NewPoint(orderID kernel.UUID, position kernel.GeoPoint, recordedAt time.Time) (Point, error) {
	if err := errors.Join(orderID.Validate(), position.Validate()); err != nil {
		return Point{}, err
	}
	if recordedAt.IsZero() {
		return Point{}, errs.NewValueIsRequiredError("recordedAt")
	}

	return Point{
		OrderID:    orderID,
		Position:   position,
		RecordedAt: recordedAt,
	}, nil
}

// Validate checks the point's fields; the zero value is invalid.
func (p Point) Validate() error {
	if err := errors.Join(p.OrderID.Validate(), p.Position.Validate()); err != nil {
		return err
	}
	if p.RecordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}
	return nil
}
