package queries_test

import (
	"context"
	"testing"
	"time"

	"livetrack/internal/adapters/out/postgres/trackrepo"
	"livetrack/internal/core/application/usecases/queries"
	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/track"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetTrackHistoryQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetTrackHistoryQueryHandler
	trackRepo *trackrepo.GormTrackRepository
}

func (suite *GetTrackHistoryQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&trackrepo.TrackPointDTO{}))

	suite.handler = queries.NewGetTrackHistoryQueryHandler(db)
	suite.trackRepo = trackrepo.NewGormTrackRepository(db)
}

func (suite *GetTrackHistoryQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE track_points").Error)
}

func (suite *GetTrackHistoryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetTrackHistoryQueryHandlerTestSuite) appendPoint(orderID kernel.UUID, lat float64, recordedAt time.Time) {
	position, err := kernel.NewGeoPoint(lat, 12.676)
	suite.Require().NoError(err)

	point, err := track.NewPoint(orderID, position, recordedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.trackRepo.Append(context.Background(), point))
}

func (suite *GetTrackHistoryQueryHandlerTestSuite) TestHandle_ReturnsPointsAscending() {
	orderID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Millisecond)

	suite.appendPoint(orderID, 41.89, base.Add(time.Minute))
	suite.appendPoint(orderID, 41.88, base)

	query, err := queries.NewGetTrackHistoryQuery(orderID)
	suite.Require().NoError(err)

	points, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(points, 2)
	suite.InDelta(41.88, points[0].Latitude, 1e-9)
	suite.InDelta(41.89, points[1].Latitude, 1e-9)
	suite.False(points[1].RecordedAt.Before(points[0].RecordedAt))
}

func (suite *GetTrackHistoryQueryHandlerTestSuite) TestHandle_EmptyHistory() {
	query, err := queries.NewGetTrackHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	points, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(points)
	suite.Empty(points)
}

func (suite *GetTrackHistoryQueryHandlerTestSuite) TestHandle_NotConstructedQuery() {
	_, err := suite.handler.Handle(context.Background(), queries.GetTrackHistoryQuery{})
	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetTrackHistoryQueryIsNotConstructed)
}

func TestGetTrackHistoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetTrackHistoryQueryHandlerTestSuite))
}
