package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetTrackHistoryQueryHandler reads an order's recorded path from the track
// history log.
type GetTrackHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackHistoryQueryHandler creates a handler for track-history queries.
func NewGetTrackHistoryQueryHandler(db *gorm.DB) GetTrackHistoryQueryHandler {
	return GetTrackHistoryQueryHandler{db: db}
}

// Handle returns the order's track points ascending by recording time. An
// order without any points yields an empty slice.
func (h GetTrackHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetTrackHistoryQuery,
) ([]GetTrackHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	points := make([]GetTrackHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			latitude,
			longitude,
			recorded_at
		FROM track_points
		WHERE order_id = ?
		ORDER BY recorded_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point GetTrackHistoryQueryResponse
		if err = rows.Scan(&point.Latitude, &point.Longitude, &point.RecordedAt); err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
