package services

import (
	"livetrack/internal/core/domain/model/kernel"
)

const (
	// DefaultProximityEtaMinutes is the ETA at or below which the customer
	// is considered about to receive the order.
	DefaultProximityEtaMinutes = 5

	// DefaultProximityRadiusMeters is the rider-to-destination distance at
	// or below which the customer is notified regardless of ETA.
	DefaultProximityRadiusMeters = 500.0
)

// ProximityPolicy decides whether an accepted location update means the
// rider is close enough to the delivery destination to notify the customer.
// The decision is pure: same inputs, same answer.
type ProximityPolicy struct {
	etaMinutes   int
	radiusMeters float64
}

// NewProximityPolicy creates a policy with the given thresholds.
// Non-positive values fall back to the defaults.
func NewProximityPolicy(etaMinutes int, radiusMeters float64) ProximityPolicy {
	if etaMinutes <= 0 {
		etaMinutes = DefaultProximityEtaMinutes
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultProximityRadiusMeters
	}
	return ProximityPolicy{
		etaMinutes:   etaMinutes,
		radiusMeters: radiusMeters,
	}
}

// ShouldNotify returns true when the reported ETA is at or below the ETA
// threshold, or when the great-circle distance between the rider and the
// delivery destination is at or below the radius threshold. With no ETA and
// no destination there is nothing to decide and the answer is false.
func (p ProximityPolicy) ShouldNotify(etaMinutes *int, rider kernel.GeoPoint, delivery *kernel.GeoPoint) bool {
	if etaMinutes != nil && *etaMinutes <= p.etaMinutes {
		return true
	}

	if delivery == nil {
		return false
	}

	distance, err := rider.DistanceTo(*delivery)
	if err != nil {
		return false
	}

	return distance <= p.radiusMeters
}
