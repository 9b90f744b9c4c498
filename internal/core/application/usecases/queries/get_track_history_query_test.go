package queries_test

import (
	"testing"

	"livetrack/internal/core/application/usecases/queries"
	"livetrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTrackHistoryQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	query, err := queries.NewGetTrackHistoryQuery(orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, query.OrderID())
}

func TestNewGetTrackHistoryQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetTrackHistoryQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
