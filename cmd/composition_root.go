package cmd

import (
	"log/slog"

	"livetrack/internal/adapters/in/auth"
	httpin "livetrack/internal/adapters/in/http"
	"livetrack/internal/adapters/in/ws"
	"livetrack/internal/adapters/out/postgres/orderrepo"
	"livetrack/internal/adapters/out/postgres/trackrepo"
	"livetrack/internal/adapters/out/push"
	"livetrack/internal/core/application/usecases/commands"
	"livetrack/internal/core/application/usecases/queries"
	"livetrack/internal/core/domain/services"
	"livetrack/internal/tracking"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters, the coalescing pipeline and the use
// case handlers once at startup. Everything downstream shares the same hub,
// gate and coalescer instances.
type CompositionRoot struct {
	gormDB *gorm.DB

	verifier  *auth.TokenVerifier
	hub       *ws.Hub
	coalescer *tracking.Coalescer

	createOrderHandler    commands.CreateOrderCommandHandler
	changeStatusHandler   commands.ChangeOrderStatusCommandHandler
	reportLocationHandler commands.ReportLocationCommandHandler
}

// NewCompositionRoot builds the full object graph from the configuration and
// the already-open infrastructure connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	amqpChannel *amqp.Channel,
	log *slog.Logger,
) (*CompositionRoot, error) {
	orderRepo := orderrepo.NewGormOrderRepository(gormDB)
	trackRepo := trackrepo.NewGormTrackRepository(gormDB)

	verifier, err := auth.NewTokenVerifier(config.JWTSecret)
	if err != nil {
		return nil, err
	}

	pusher, err := push.NewAmqpDispatcher(amqpChannel)
	if err != nil {
		return nil, err
	}

	access, err := ws.NewRepositoryOrderAccess(orderRepo)
	if err != nil {
		return nil, err
	}

	hub, err := ws.NewHub(access, log)
	if err != nil {
		return nil, err
	}

	gate := services.NewNotificationGate()
	policy := services.NewProximityPolicy(config.ProximityEtaMinutes, config.ProximityRadiusMeters)

	applier, err := commands.NewLocationUpdateApplier(
		orderRepo, trackRepo, hub, pusher, policy, gate, config.NotifyRepeat, log)
	if err != nil {
		return nil, err
	}

	coalescer, err := tracking.NewCoalescer(applier, config.EtaChangeThresholdMinutes, log)
	if err != nil {
		return nil, err
	}

	createOrderHandler, err := commands.NewCreateOrderCommandHandler(orderRepo, hub, log)
	if err != nil {
		return nil, err
	}

	changeStatusHandler, err := commands.NewChangeOrderStatusCommandHandler(
		orderRepo, hub, coalescer, gate, log)
	if err != nil {
		return nil, err
	}

	reportLocationHandler, err := commands.NewReportLocationCommandHandler(orderRepo, coalescer)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:                gormDB,
		verifier:              verifier,
		hub:                   hub,
		coalescer:             coalescer,
		createOrderHandler:    createOrderHandler,
		changeStatusHandler:   changeStatusHandler,
		reportLocationHandler: reportLocationHandler,
	}, nil
}

// Coalescer exposes the shared coalescer for the flush job.
func (c *CompositionRoot) Coalescer() *tracking.Coalescer {
	return c.coalescer
}

// TokenVerifier exposes the shared verifier for the HTTP middleware.
func (c *CompositionRoot) TokenVerifier() *auth.TokenVerifier {
	return c.verifier
}

// Hub exposes the websocket hub for the /ws endpoint.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

// CreateHTTPServer assembles the REST server from the wired handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.createOrderHandler,
		c.changeStatusHandler,
		c.reportLocationHandler,
		c.CreateGetOrderTrackingQueryHandler(),
		c.CreateGetTrackHistoryQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackHistoryQueryHandler() queries.GetTrackHistoryQueryHandler {
	return queries.NewGetTrackHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}
