// Package ws implements the room-scoped websocket broadcast hub: customers
// follow their own orders, riders their assigned ones, dispatch managers the
// whole board. Rooms are ephemeral; a reconnecting client joins again.
package ws

import (
	"encoding/json"
	"time"
)

// Event is the wire envelope for every websocket message, in both directions.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client-initiated event types.
const (
	EventJoinUserRoom       = "joinUserRoom"
	EventJoinManagerRoom    = "joinManagerRoom"
	EventJoinOrderTracking  = "joinOrderTracking"
	EventLeaveOrderTracking = "leaveOrderTracking"
)

// Server-initiated event types.
const (
	EventOrderTrackingState  = "orderTrackingState"
	EventRiderLocationUpdate = "riderLocationUpdate"
	EventOrderStatusUpdate   = "orderStatusUpdate"
	EventTrackingStopped     = "trackingStopped"
	EventActiveOrderUpdate   = "activeOrderUpdate"
	EventError               = "error"
)

// JoinUserRoomPayload carries the user id the client wants a personal room
// for. It must match the authenticated identity.
type JoinUserRoomPayload struct {
	UserID string `json:"user_id"`
}

// OrderRoomPayload addresses an order room on join and leave.
type OrderRoomPayload struct {
	OrderID string `json:"order_id"`
}

// OrderTrackingStatePayload is the snapshot sent right after a successful
// order-room join.
type OrderTrackingStatePayload struct {
	OrderID        string   `json:"order_id"`
	Status         string   `json:"status"`
	RiderLatitude  *float64 `json:"rider_latitude"`
	RiderLongitude *float64 `json:"rider_longitude"`
	EtaMinutes     *int     `json:"eta_minutes"`
	UpdatedAt      string   `json:"updated_at"`
}

// RiderLocationUpdatePayload is one live position sample fanned out to the
// order room and the manager room.
type RiderLocationUpdatePayload struct {
	OrderID    string  `json:"order_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	EtaMinutes *int    `json:"eta_minutes"`
	Timestamp  string  `json:"timestamp"`
}

// OrderStatusUpdatePayload announces a lifecycle transition.
type OrderStatusUpdatePayload struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// TrackingStoppedPayload tells order-room subscribers that live tracking
// ended; reason carries the terminal status.
type TrackingStoppedPayload struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// ErrorPayload reports a rejected client event.
type ErrorPayload struct {
	Message string `json:"message"`
}

// newEvent marshals payload into an Event envelope. Payload types in this
// package always marshal; an error here is a programming bug.
func newEvent(eventType string, payload any) Event {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{Type: EventError}
	}
	return Event{Type: eventType, Data: data}
}

func wireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
