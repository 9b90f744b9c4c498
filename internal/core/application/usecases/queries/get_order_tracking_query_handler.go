package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads one order's tracking projection and
// applies the role filter. Authorization failures read as not found so the
// endpoint does not leak order existence.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for order-tracking
// queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle returns the order projection when the caller may see it, and an
// ObjectNotFoundError otherwise.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			rider_id,
			status,
			delivery_latitude,
			delivery_longitude,
			rider_latitude,
			rider_longitude,
			eta_minutes,
			received_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	resp, err := scanOrderTrackingRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	if !query.Actor().CanViewOrder(resp.CustomerID, resp.RiderID) {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	return resp, nil
}

func scanOrderTrackingRow(row *sql.Row) (GetOrderTrackingQueryResponse, error) {
	var (
		resp        GetOrderTrackingQueryResponse
		id          uuid.UUID
		customerID  uuid.UUID
		riderID     *uuid.UUID
		status      string
		deliveryLat *float64
		deliveryLon *float64
		riderLat    *float64
		riderLon    *float64
		receivedAt  *time.Time
	)

	if err := row.Scan(
		&id,
		&customerID,
		&riderID,
		&status,
		&deliveryLat,
		&deliveryLon,
		&riderLat,
		&riderLon,
		&resp.EtaMinutes,
		&receivedAt,
		&resp.UpdatedAt,
	); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	resp.ID = orderID

	owner, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	resp.CustomerID = owner

	if riderID != nil {
		rider, riderErr := kernel.UUIDFromBytes(riderID[:])
		if riderErr != nil {
			return GetOrderTrackingQueryResponse{}, riderErr
		}
		resp.RiderID = &rider
	}

	orderStatus, err := order.StatusFromString(status)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	resp.Status = orderStatus

	resp.Delivery, err = optionalGeoPoint(deliveryLat, deliveryLon)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	resp.RiderPosition, err = optionalGeoPoint(riderLat, riderLon)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	resp.ReceivedAt = receivedAt
	return resp, nil
}

func optionalGeoPoint(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil //nolint:nilnil //absent coordinates are a valid state
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
