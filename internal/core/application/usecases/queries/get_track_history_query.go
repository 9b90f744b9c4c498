package queries

import (
	"errors"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/pkg/guard"
)

var ErrGetTrackHistoryQueryIsNotConstructed = errors.New(
	"GetTrackHistoryQuery must be created via NewGetTrackHistoryQuery constructor",
)

// GetTrackHistoryQuery retrieves the recorded delivery path of one order.
type GetTrackHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackHistoryQuery creates a track-history query for an order.
func NewGetTrackHistoryQuery(orderID kernel.UUID) (GetTrackHistoryQuery, error) {
	query := GetTrackHistoryQuery{guard: guard.NewConstructorGuard()}

	if err := query.setOrderID(orderID); err != nil {
		return GetTrackHistoryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetTrackHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetTrackHistoryQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetTrackHistoryQueryResponse is one recorded location sample.
type GetTrackHistoryQueryResponse struct {
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}
