package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"livetrack/internal/adapters/in/auth"
	"livetrack/internal/core/domain/model/kernel"
	"livetrack/internal/core/domain/model/order"
	"livetrack/internal/core/ports"
	"livetrack/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const managersRoom = "managers"

func userRoom(id kernel.UUID) string {
	return "user_" + id.String()
}

func orderRoom(id kernel.UUID) string {
	return "order_" + id.String()
}

// OrderAccess authorizes order-room joins. Authorize returns the order when
// the actor may track it and an ObjectNotFoundError otherwise, so callers
// cannot probe for order existence.
type OrderAccess interface {
	Authorize(ctx context.Context, actor ports.Identity, orderID kernel.UUID) (*order.Order, error)
}

// RepositoryOrderAccess implements OrderAccess on the order repository.
type RepositoryOrderAccess struct {
	orders ports.OrderRepository
}

// NewRepositoryOrderAccess creates the repository-backed access check.
func NewRepositoryOrderAccess(orders ports.OrderRepository) (*RepositoryOrderAccess, error) {
	if orders == nil {
		return nil, errs.NewValueIsRequiredError("orders")
	}
	return &RepositoryOrderAccess{orders: orders}, nil
}

// Authorize loads the order and applies the role filter.
func (a *RepositoryOrderAccess) Authorize(ctx context.Context, actor ports.Identity, orderID kernel.UUID) (*order.Order, error) {
	aggregate, err := a.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !actor.CanViewOrder(aggregate.CustomerID(), aggregate.RiderID()) {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}

	return aggregate, nil
}

// Hub owns every live websocket connection and the room memberships.
// Publishing is fire-and-forget: events go to whoever is in the room right
// now, and a slow client is dropped instead of blocking the fan-out.
//
// Implements ports.Broadcaster.
type Hub struct {
	access   OrderAccess
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub(access OrderAccess, log *slog.Logger) (*Hub, error) {
	if access == nil {
		return nil, errs.NewValueIsRequiredError("access")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	return &Hub{
		access: access,
		log:    log.With("component", "ws_hub"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
	}, nil
}

// Handler upgrades an authenticated request to a websocket connection. The
// token comes from the Authorization header or, for browser clients that
// cannot set headers on websocket requests, the token query parameter.
func (h *Hub) Handler(verifier *auth.TokenVerifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(echo.HeaderAuthorization)
		if token == "" {
			token = c.QueryParam("token")
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}

		client := newClient(h, conn, identity)
		h.register(client)

		go client.writePump()
		go client.readPump()
		return nil
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// kick drops a client that stopped draining its egress.
func (h *Hub) kick(client *Client) {
	h.log.Warn("dropping slow websocket client",
		"user_id", client.identity.UserID.String())
	_ = client.conn.Close()
}

func (h *Hub) removeLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	for name, members := range h.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, name)
		}
	}
	close(client.egress)
}

func (h *Hub) joinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
}

func (h *Hub) leaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.rooms[room]
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// InRoom reports room membership; used by tests and the health endpoint.
func (h *Hub) InRoom(client *Client, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[room][client]
	return ok
}

func (h *Hub) handleClientEvent(client *Client, event Event) {
	switch event.Type {
	case EventJoinUserRoom:
		h.handleJoinUserRoom(client, event.Data)
	case EventJoinManagerRoom:
		h.handleJoinManagerRoom(client)
	case EventJoinOrderTracking:
		h.handleJoinOrderTracking(client, event.Data)
	case EventLeaveOrderTracking:
		h.handleLeaveOrderTracking(client, event.Data)
	default:
		client.send(newEvent(EventError, ErrorPayload{
			Message: fmt.Sprintf("unknown event type %q", event.Type),
		}))
	}
}

// handleJoinUserRoom only admits a client into its own personal room: the
// requested id must match the authenticated identity.
func (h *Hub) handleJoinUserRoom(client *Client, data json.RawMessage) {
	var payload JoinUserRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.send(newEvent(EventError, ErrorPayload{Message: "malformed joinUserRoom payload"}))
		return
	}

	requested, err := kernel.UUIDFromString(payload.UserID)
	if err != nil || !requested.IsEqual(client.identity.UserID) {
		client.send(newEvent(EventError, ErrorPayload{Message: "cannot join another user's room"}))
		return
	}

	h.joinRoom(client, userRoom(requested))
}

func (h *Hub) handleJoinManagerRoom(client *Client) {
	if !client.identity.Role.IsStaff() {
		client.send(newEvent(EventError, ErrorPayload{Message: "manager room requires a staff role"}))
		return
	}

	h.joinRoom(client, managersRoom)
}

func (h *Hub) handleJoinOrderTracking(client *Client, data json.RawMessage) {
	var payload OrderRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.send(newEvent(EventError, ErrorPayload{Message: "malformed joinOrderTracking payload"}))
		return
	}

	orderID, err := kernel.UUIDFromString(payload.OrderID)
	if err != nil {
		client.send(newEvent(EventError, ErrorPayload{Message: "invalid order id"}))
		return
	}

	aggregate, err := h.access.Authorize(context.Background(), client.identity, orderID)
	if err != nil {
		client.send(newEvent(EventError, ErrorPayload{Message: "order not found"}))
		return
	}

	h.joinRoom(client, orderRoom(orderID))
	client.send(newEvent(EventOrderTrackingState, trackingStatePayload(aggregate)))
}

func (h *Hub) handleLeaveOrderTracking(client *Client, data json.RawMessage) {
	var payload OrderRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		client.send(newEvent(EventError, ErrorPayload{Message: "malformed leaveOrderTracking payload"}))
		return
	}

	orderID, err := kernel.UUIDFromString(payload.OrderID)
	if err != nil {
		client.send(newEvent(EventError, ErrorPayload{Message: "invalid order id"}))
		return
	}

	h.leaveRoom(client, orderRoom(orderID))
}

func trackingStatePayload(aggregate *order.Order) OrderTrackingStatePayload {
	payload := OrderTrackingStatePayload{
		OrderID:    aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		EtaMinutes: aggregate.EtaMinutes(),
		UpdatedAt:  wireTime(aggregate.UpdatedAt()),
	}

	if position := aggregate.RiderPosition(); position != nil {
		lat := position.Latitude()
		lon := position.Longitude()
		payload.RiderLatitude = &lat
		payload.RiderLongitude = &lon
	}

	return payload
}

// PublishRiderLocation fans a location sample out to the order room and the
// manager room.
func (h *Hub) PublishRiderLocation(event ports.LocationEvent) {
	payload := RiderLocationUpdatePayload{
		OrderID:    event.OrderID.String(),
		Latitude:   event.Position.Latitude(),
		Longitude:  event.Position.Longitude(),
		EtaMinutes: event.EtaMinutes,
		Timestamp:  wireTime(event.Timestamp),
	}

	wireEvent := newEvent(EventRiderLocationUpdate, payload)
	h.broadcast(wireEvent, orderRoom(event.OrderID), managersRoom)
}

// PublishOrderStatus fans a lifecycle transition out to the order room, the
// customer's personal room and (as an active-board refresh) the managers.
// The transition to delivered additionally closes the order room with a
// trackingStopped event.
func (h *Hub) PublishOrderStatus(event ports.StatusEvent) {
	payload := OrderStatusUpdatePayload{
		OrderID:   event.OrderID.String(),
		Status:    event.Status.String(),
		Timestamp: wireTime(event.Timestamp),
	}

	h.broadcast(newEvent(EventOrderStatusUpdate, payload),
		orderRoom(event.OrderID), userRoom(event.CustomerID))
	h.broadcast(newEvent(EventActiveOrderUpdate, payload), managersRoom)

	if event.Status == order.Delivered {
		h.broadcast(newEvent(EventTrackingStopped, TrackingStoppedPayload{
			OrderID: event.OrderID.String(),
			Reason:  event.Status.String(),
		}), orderRoom(event.OrderID))
	}
}

// broadcast delivers an event to every client in the given rooms, once per
// client even when rooms overlap. Sending happens under the read lock:
// unregister closes egress under the write lock, so a send can never hit a
// closed channel.
func (h *Hub) broadcast(event Event, rooms ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	recipients := make(map[*Client]struct{})
	for _, room := range rooms {
		for client := range h.rooms[room] {
			recipients[client] = struct{}{}
		}
	}

	for client := range recipients {
		client.send(event)
	}
}

var _ ports.Broadcaster = (*Hub)(nil)
