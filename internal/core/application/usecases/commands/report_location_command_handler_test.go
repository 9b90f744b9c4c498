package commands_test

import (
	"errors"
	"testing"

	"livetrack/internal/core/application/usecases/commands"
	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/pkg/errs"
	"livetrack/internal/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReportLocationHandler(t *testing.T, repo *MockOrderRepository, coalescer *MockCoalescer) commands.ReportLocationCommandHandler {
	t.Helper()
	h, err := commands.NewReportLocationCommandHandler(repo, coalescer)
	require.NoError(t, err)
	return h
}

func TestReportLocationCommandHandler_AcceptedReport(t *testing.T) {
	riderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	aggregate := inTransitOrder(t, customerID, riderID)
	position := mustGeoPoint(t, 41.88, 12.676)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	coalescer := new(MockCoalescer)
	coalescer.On("Submit", mock.Anything, mock.MatchedBy(func(u tracking.Update) bool {
		return u.OrderID.IsEqual(aggregate.ID()) &&
			u.CustomerID.IsEqual(customerID) &&
			u.RiderID.IsEqual(riderID) &&
			u.Position.IsEqual(position) &&
			u.EtaMinutes != nil && *u.EtaMinutes == 10 &&
			u.Delivery != nil
	})).Return(true, nil).Once()

	h := newReportLocationHandler(t, repo, coalescer)
	cmd, _ := commands.NewReportLocationCommand(aggregate.ID(), riderIdentity(riderID), position, intPtr(10))
	snapshot, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.True(t, snapshot.OrderID.IsEqual(aggregate.ID()))
	assert.Equal(t, order.InTransit, snapshot.Status)
	assert.True(t, snapshot.RiderPosition.IsEqual(position))
	require.NotNil(t, snapshot.EtaMinutes)
	assert.Equal(t, 10, *snapshot.EtaMinutes)
	require.NotNil(t, snapshot.ReceivedAt)
	repo.AssertExpectations(t)
	coalescer.AssertExpectations(t)
}

func TestReportLocationCommandHandler_WrongRiderIsRejected(t *testing.T) {
	aggregate := inTransitOrder(t, kernel.NewUUID(), kernel.NewUUID())

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	// The report never reaches the coalescer.
	coalescer := new(MockCoalescer)

	h := newReportLocationHandler(t, repo, coalescer)
	cmd, _ := commands.NewReportLocationCommand(
		aggregate.ID(), riderIdentity(kernel.NewUUID()), mustGeoPoint(t, 41.88, 12.676), intPtr(10))
	_, err := h.Handle(t.Context(), cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	repo.AssertExpectations(t)
	coalescer.AssertExpectations(t)
}

func TestReportLocationCommandHandler_UntrackableStatusIsRejected(t *testing.T) {
	riderID := kernel.NewUUID()
	aggregate := inTransitOrder(t, kernel.NewUUID(), riderID)
	require.NoError(t, aggregate.MarkDelivered(riderID))

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	coalescer := new(MockCoalescer)

	h := newReportLocationHandler(t, repo, coalescer)
	cmd, _ := commands.NewReportLocationCommand(
		aggregate.ID(), riderIdentity(riderID), mustGeoPoint(t, 41.88, 12.676), nil)
	_, err := h.Handle(t.Context(), cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	coalescer.AssertExpectations(t)
}

func TestReportLocationCommandHandler_SubmitErrorSurfaces(t *testing.T) {
	riderID := kernel.NewUUID()
	aggregate := inTransitOrder(t, kernel.NewUUID(), riderID)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	coalescer := new(MockCoalescer)
	coalescer.On("Submit", mock.Anything, mock.Anything).Return(false, errors.New("db down")).Once()

	h := newReportLocationHandler(t, repo, coalescer)
	cmd, _ := commands.NewReportLocationCommand(
		aggregate.ID(), riderIdentity(riderID), mustGeoPoint(t, 41.88, 12.676), intPtr(10))
	_, err := h.Handle(t.Context(), cmd)

	require.Error(t, err)
	coalescer.AssertExpectations(t)
}

func TestReportLocationCommandHandler_OmittedEtaKeepsPrevious(t *testing.T) {
	riderID := kernel.NewUUID()
	aggregate := inTransitOrder(t, kernel.NewUUID(), riderID)
	require.NoError(t, aggregate.RecordRiderPosition(riderID, mustGeoPoint(t, 41.87, 12.67), intPtr(12), aggregate.CreatedAt()))

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	coalescer := new(MockCoalescer)
	coalescer.On("Submit", mock.Anything, mock.Anything).Return(true, nil).Once()

	h := newReportLocationHandler(t, repo, coalescer)
	cmd, _ := commands.NewReportLocationCommand(
		aggregate.ID(), riderIdentity(riderID), mustGeoPoint(t, 41.88, 12.676), nil)
	snapshot, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.NotNil(t, snapshot.EtaMinutes)
	assert.Equal(t, 12, *snapshot.EtaMinutes)
}
