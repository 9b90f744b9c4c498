// Package http exposes the tracking REST surface on echo: order creation,
// status transitions, rider location reports and the read-side projections.
// Authentication happens in the identity middleware; authorization lives in
// the domain and the queries, the handlers only translate wire shapes.
package http

import (
	"net/http"

	"livetrack/internal/adapters/in/auth"
	"livetrack/internal/core/application/usecases/commands"
	"livetrack/internal/core/application/usecases/queries"
	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	changeStatusHandler   commands.ChangeOrderStatusCommandHandler
	reportLocationHandler commands.ReportLocationCommandHandler

	// Query handlers
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler
	getTrackHistoryHandler  queries.GetTrackHistoryQueryHandler
	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler,
	getTrackHistoryHandler queries.GetTrackHistoryQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		changeStatusHandler:     changeStatusHandler,
		reportLocationHandler:   reportLocationHandler,
		getOrderTrackingHandler: getOrderTrackingHandler,
		getTrackHistoryHandler:  getTrackHistoryHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
	}
}

// RegisterRoutes mounts the authenticated API group and the websocket
// endpoint. The websocket handler authenticates on its own because browser
// clients pass the token as a query parameter.
func (s *Server) RegisterRoutes(e *echo.Echo, verifier *auth.TokenVerifier, wsHandler echo.HandlerFunc) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/ws", wsHandler)

	api := e.Group("/api/v1", RequireIdentity(verifier))
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/location", s.ReportLocation)
	api.POST("/orders/:id/status", s.ChangeStatus)
	api.GET("/orders/:id/track", s.GetOrderTracking)
	api.GET("/orders/:id/track-history", s.GetTrackHistory)
	api.GET("/orders/active/all", s.GetActiveOrders)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := identityFrom(ctx)
	if !ok {
		return writeError(ctx, errs.NewNotAuthorizedError("unknown", "create order"))
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customerID, err := resolveCustomerID(actor, request.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}

	delivery, err := optionalGeoPoint(request.DeliveryLatitude, request.DeliveryLongitude)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, delivery)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// ReportLocation handles POST /api/v1/orders/:id/location.
func (s *Server) ReportLocation(ctx echo.Context) error {
	actor, ok := identityFrom(ctx)
	if !ok {
		return writeError(ctx, errs.NewNotAuthorizedError("unknown", "report location"))
	}

	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request ReportLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if request.Latitude == nil || request.Longitude == nil {
		return writeError(ctx, errs.NewValueIsRequiredError("coordinates"))
	}

	position, err := kernel.NewGeoPoint(*request.Latitude, *request.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReportLocationCommand(orderID, actor, position, request.EtaMinutes)
	if err != nil {
		return writeError(ctx, err)
	}

	snapshot, err := s.reportLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReportLocationResponse{
		Tracking: trackingFromSnapshot(snapshot),
	})
}

// ChangeStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeStatus(ctx echo.Context) error {
	actor, ok := identityFrom(ctx)
	if !ok {
		return writeError(ctx, errs.NewNotAuthorizedError("unknown", "change status"))
	}

	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actor, target)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ChangeStatusResponse{
		OrderID: orderID.String(),
		Status:  target.String(),
	})
}

// GetOrderTracking handles GET /api/v1/orders/:id/track.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	actor, ok := identityFrom(ctx)
	if !ok {
		return writeError(ctx, errs.NewNotAuthorizedError("unknown", "view order"))
	}

	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderTrackingFromQuery(response))
}

// GetTrackHistory handles GET /api/v1/orders/:id/track-history. The tracking
// query runs first so history is only visible to callers that may see the
// order itself.
func (s *Server) GetTrackHistory(ctx echo.Context) error {
	actor, ok := identityFrom(ctx)
	if !ok {
		return writeError(ctx, errs.NewNotAuthorizedError("unknown", "view track history"))
	}

	orderID, err := pathOrderID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	trackingQuery, err := queries.NewGetOrderTrackingQuery(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}
	if _, err = s.getOrderTrackingHandler.Handle(ctx.Request().Context(), trackingQuery); err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetTrackHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	points, err := s.getTrackHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]TrackPointResponse, len(points))
	for i, point := range points {
		response[i] = TrackPointResponse{
			Latitude:   point.Latitude,
			Longitude:  point.Longitude,
			RecordedAt: formatTime(point.RecordedAt),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active/all - the dispatch board.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	actor, ok := identityFrom(ctx)
	if !ok {
		return writeError(ctx, errs.NewNotAuthorizedError("unknown", "view active orders"))
	}

	if !actor.Role.IsStaff() {
		return writeError(ctx, errs.NewNotAuthorizedError(actor.UserID.String(), "view active orders"))
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, activeOrder := range orders {
		response[i] = activeOrderFromQuery(activeOrder)
	}

	return ctx.JSON(http.StatusOK, response)
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return orderID, nil
}

// resolveCustomerID picks the order owner: customers always create orders
// for themselves, staff may create on a customer's behalf.
func resolveCustomerID(actor ports.Identity, raw string) (kernel.UUID, error) {
	if actor.Role == ports.RoleCustomer {
		return actor.UserID, nil
	}
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("customer_id")
	}

	customerID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("customer_id", err)
	}
	return customerID, nil
}

func optionalGeoPoint(latitude, longitude *float64) (*kernel.GeoPoint, error) {
	if latitude == nil && longitude == nil {
		return nil, nil //nolint:nilnil //absence is a valid value
	}
	if latitude == nil || longitude == nil {
		return nil, errs.NewValueIsRequiredError("delivery coordinates")
	}

	point, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
