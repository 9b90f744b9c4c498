package queries

import (
	"context"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads all in-flight orders from the database.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active-order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns every order in an active status, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			rider_id,
			status,
			rider_latitude,
			rider_longitude,
			eta_minutes,
			updated_at
		FROM orders
		WHERE status IN (?, ?, ?, ?)
		ORDER BY created_at
	`, order.Pending.String(), order.Accepted.String(),
		order.Pickup.String(), order.InTransit.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		row, scanErr := scanActiveOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActiveOrderRow(rows rowScanner) (GetActiveOrdersQueryResponse, error) {
	var (
		resp       GetActiveOrdersQueryResponse
		id         uuid.UUID
		customerID uuid.UUID
		riderID    *uuid.UUID
		status     string
		riderLat   *float64
		riderLon   *float64
	)

	if err := rows.Scan(
		&id,
		&customerID,
		&riderID,
		&status,
		&riderLat,
		&riderLon,
		&resp.EtaMinutes,
		&resp.UpdatedAt,
	); err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}
	resp.ID = orderID

	owner, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}
	resp.CustomerID = owner

	if riderID != nil {
		rider, riderErr := kernel.UUIDFromBytes(riderID[:])
		if riderErr != nil {
			return GetActiveOrdersQueryResponse{}, riderErr
		}
		resp.RiderID = &rider
	}

	orderStatus, err := order.StatusFromString(status)
	if err != nil {
		return GetActiveOrdersQueryResponse{}, err
	}
	resp.Status = orderStatus

	if riderLat != nil && riderLon != nil {
		position, posErr := kernel.NewGeoPoint(*riderLat, *riderLon)
		if posErr != nil {
			return GetActiveOrdersQueryResponse{}, posErr
		}
		resp.RiderPosition = &position
	}

	return resp, nil
}
