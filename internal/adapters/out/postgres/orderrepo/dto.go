// Package orderrepo persists order aggregates with GORM. It maps between the
// domain aggregate and the relational row, revalidating on the way back so
// corrupt rows surface as errors.
package orderrepo

import (
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for one order. Rider assignment, coordinates,
// ETA and receivedAt are nullable: they fill in as the delivery progresses.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	RiderID    *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"type:varchar(16);index"`

	DeliveryLatitude  *float64
	DeliveryLongitude *float64
	RiderLatitude     *float64
	RiderLongitude    *float64

	EtaMinutes *int
	ReceivedAt *time.Time

	// The aggregate owns its timestamps; GORM's auto-stamping is disabled so
	// the persisted values match what callers observed in snapshots.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	dto := OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		RiderID:    riderID,
		Status:     aggregate.Status().String(),
		EtaMinutes: aggregate.EtaMinutes(),
		ReceivedAt: aggregate.ReceivedAt(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}

	dto.DeliveryLatitude, dto.DeliveryLongitude = splitGeoPoint(aggregate.Delivery())
	dto.RiderLatitude, dto.RiderLongitude = splitGeoPoint(aggregate.RiderPosition())

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	delivery, err := joinGeoPoint(dto.DeliveryLatitude, dto.DeliveryLongitude)
	if err != nil {
		return nil, err
	}

	riderPosition, err := joinGeoPoint(dto.RiderLatitude, dto.RiderLongitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, riderID,
		status,
		delivery, riderPosition,
		dto.EtaMinutes, dto.ReceivedAt,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func splitGeoPoint(point *kernel.GeoPoint) (lat, lon *float64) {
	if point == nil {
		return nil, nil
	}

	latitude := point.Latitude()
	longitude := point.Longitude()
	return &latitude, &longitude
}

func joinGeoPoint(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil //nolint:nilnil //absent coordinates are a valid state
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
