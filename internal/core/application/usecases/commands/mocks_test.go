package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/core/domain/model/track"
	"livetrack/internal/core/ports"
	"livetrack/internal/tracking"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockTrackRepository struct{ mock.Mock }

func (m *MockTrackRepository) Append(ctx context.Context, point track.Point) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockTrackRepository) History(_ context.Context, _ kernel.UUID) ([]track.Point, error) {
	return nil, errors.New("not implemented in mock")
}

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) PublishRiderLocation(event ports.LocationEvent) {
	m.Called(event)
}

func (m *MockBroadcaster) PublishOrderStatus(event ports.StatusEvent) {
	m.Called(event)
}

type MockPushDispatcher struct{ mock.Mock }

func (m *MockPushDispatcher) Send(ctx context.Context, userID kernel.UUID, n ports.Notification) error {
	args := m.Called(ctx, userID, n)
	return args.Error(0)
}

type MockCoalescer struct{ mock.Mock }

func (m *MockCoalescer) Submit(ctx context.Context, update tracking.Update) (bool, error) {
	args := m.Called(ctx, update)
	return args.Bool(0), args.Error(1)
}

func (m *MockCoalescer) Drop(orderID kernel.UUID) {
	m.Called(orderID)
}

type MockGate struct{ mock.Mock }

func (m *MockGate) ShouldFire(orderID kernel.UUID, near bool) bool {
	args := m.Called(orderID, near)
	return args.Bool(0)
}

func (m *MockGate) Clear(orderID kernel.UUID) {
	m.Called(orderID)
}

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func intPtr(v int) *int { return &v }

// inTransitOrder builds an order assigned to riderID and moved to in_transit.
func inTransitOrder(t *testing.T, customerID, riderID kernel.UUID) *order.Order {
	t.Helper()

	delivery := mustGeoPoint(t, 41.9, 12.5)
	now := time.Now().UTC()

	o, err := order.RestoreOrder(
		kernel.NewUUID(), customerID, &riderID,
		order.InTransit,
		&delivery, nil, nil, nil,
		now, now,
	)
	require.NoError(t, err)
	return o
}

func riderIdentity(riderID kernel.UUID) ports.Identity {
	return ports.Identity{UserID: riderID, Role: ports.RoleRider}
}
