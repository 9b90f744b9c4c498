// Package trackrepo persists the append-only track history log with GORM.
package trackrepo

import (
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/track"

	"github.com/google/uuid"
)

// TrackPointDTO is one persisted location sample. Rows are insert-only; the
// composite index serves the per-order history read in recording order.
type TrackPointDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index:idx_track_order_time,priority:1"`
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time `gorm:"index:idx_track_order_time,priority:2"`
}

// TableName overrides GORM's default naming to use "track_points".
func (TrackPointDTO) TableName() string {
	return "track_points"
}

func fromDomain(point track.Point) TrackPointDTO {
	return TrackPointDTO{
		OrderID:    point.OrderID.Bytes(),
		Latitude:   point.Position.Latitude(),
		Longitude:  point.Position.Longitude(),
		RecordedAt: point.RecordedAt,
	}
}

func toDomain(dto TrackPointDTO) (track.Point, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return track.Point{}, err
	}

	position, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return track.Point{}, err
	}

	return track.NewPoint(orderID, position, dto.RecordedAt)
}
