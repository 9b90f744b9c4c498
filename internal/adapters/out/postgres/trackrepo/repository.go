package trackrepo

import (
	"context"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/track"

	"gorm.io/gorm"
)

// GormTrackRepository implements ports.TrackRepository using GORM.
type GormTrackRepository struct {
	db *gorm.DB
}

// NewGormTrackRepository creates a new GORM track repository.
func NewGormTrackRepository(db *gorm.DB) *GormTrackRepository {
	return &GormTrackRepository{db: db}
}

// Append inserts one track point.
func (r *GormTrackRepository) Append(ctx context.Context, point track.Point) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dto := fromDomain(point)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// History returns an order's track points ascending by recording time. An
// order without points yields an empty slice.
func (r *GormTrackRepository) History(ctx context.Context, orderID kernel.UUID) ([]track.Point, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackPointDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("recorded_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	points := make([]track.Point, 0, len(dtos))
	for _, dto := range dtos {
		point, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		points = append(points, point)
	}

	return points, nil
}
