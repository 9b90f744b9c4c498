package services_test

import (
	"testing"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func intPtr(v int) *int { return &v }

func TestProximityPolicy_ShouldNotify(t *testing.T) {
	policy := services.NewProximityPolicy(5, 500)

	// Roughly 110 m apart.
	near := geoPoint(t, 41.880, 12.676)
	nearDelivery := geoPoint(t, 41.881, 12.676)
	// Tens of kilometers apart.
	farDelivery := geoPoint(t, 42.2, 13.0)

	t.Run("eta_at_threshold_notifies", func(t *testing.T) {
		assert.True(t, policy.ShouldNotify(intPtr(5), near, &farDelivery))
	})

	t.Run("eta_below_threshold_notifies", func(t *testing.T) {
		assert.True(t, policy.ShouldNotify(intPtr(1), near, nil))
	})

	t.Run("eta_above_threshold_with_far_delivery_does_not_notify", func(t *testing.T) {
		assert.False(t, policy.ShouldNotify(intPtr(10), near, &farDelivery))
	})

	t.Run("distance_within_radius_notifies", func(t *testing.T) {
		assert.True(t, policy.ShouldNotify(intPtr(10), near, &nearDelivery))
	})

	t.Run("distance_within_radius_without_eta_notifies", func(t *testing.T) {
		assert.True(t, policy.ShouldNotify(nil, near, &nearDelivery))
	})

	t.Run("no_eta_and_no_delivery_does_not_notify", func(t *testing.T) {
		assert.False(t, policy.ShouldNotify(nil, near, nil))
	})

	t.Run("no_eta_and_far_delivery_does_not_notify", func(t *testing.T) {
		assert.False(t, policy.ShouldNotify(nil, near, &farDelivery))
	})
}

func TestNewProximityPolicy_Defaults(t *testing.T) {
	policy := services.NewProximityPolicy(0, 0)

	rider := geoPoint(t, 41.88, 12.676)

	assert.True(t, policy.ShouldNotify(intPtr(services.DefaultProximityEtaMinutes), rider, nil))
	assert.False(t, policy.ShouldNotify(intPtr(services.DefaultProximityEtaMinutes+1), rider, nil))
}

func TestNotificationGate(t *testing.T) {
	t.Run("fires_once_while_near", func(t *testing.T) {
		gate := services.NewNotificationGate()
		orderID := kernel.NewUUID()

		assert.True(t, gate.ShouldFire(orderID, true))
		assert.False(t, gate.ShouldFire(orderID, true))
		assert.False(t, gate.ShouldFire(orderID, true))
	})

	t.Run("re_arms_after_leaving_the_condition", func(t *testing.T) {
		gate := services.NewNotificationGate()
		orderID := kernel.NewUUID()

		assert.True(t, gate.ShouldFire(orderID, true))
		assert.False(t, gate.ShouldFire(orderID, false))
		assert.True(t, gate.ShouldFire(orderID, true))
	})

	t.Run("orders_are_independent", func(t *testing.T) {
		gate := services.NewNotificationGate()
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		assert.True(t, gate.ShouldFire(first, true))
		assert.True(t, gate.ShouldFire(second, true))
	})

	t.Run("clear_re_arms_the_order", func(t *testing.T) {
		gate := services.NewNotificationGate()
		orderID := kernel.NewUUID()

		assert.True(t, gate.ShouldFire(orderID, true))
		gate.Clear(orderID)
		assert.True(t, gate.ShouldFire(orderID, true))
	})

	t.Run("far_update_never_fires", func(t *testing.T) {
		gate := services.NewNotificationGate()

		assert.False(t, gate.ShouldFire(kernel.NewUUID(), false))
	})
}
