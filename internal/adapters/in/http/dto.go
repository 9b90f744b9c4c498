package http

import (
	"time"

	"livetrack/internal/core/application/usecases/commands"
	"livetrack/internal/core/application/usecases/queries"
	"livetrack/internal/core/domain/model/kernel"
)

// CreateOrderRequest creates an order on the tracking service. customer_id
// defaults to the authenticated customer; the delivery destination is
// optional until checkout confirms it.
type CreateOrderRequest struct {
	CustomerID        string   `json:"customer_id"`
	DeliveryLatitude  *float64 `json:"delivery_latitude"`
	DeliveryLongitude *float64 `json:"delivery_longitude"`
}

// CreateOrderResponse returns the id assigned to the new order.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// ReportLocationRequest is one rider position sample. Coordinates are
// pointers so an omitted field is distinguishable from a literal zero.
type ReportLocationRequest struct {
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	EtaMinutes *int     `json:"eta_minutes"`
}

// TrackingDTO is the acknowledged tracking state after a location report.
type TrackingDTO struct {
	ID             string   `json:"id"`
	Status         string   `json:"status"`
	RiderLatitude  *float64 `json:"rider_latitude"`
	RiderLongitude *float64 `json:"rider_longitude"`
	EtaMinutes     *int     `json:"eta_minutes"`
	UpdatedAt      string   `json:"updated_at"`
}

// ReportLocationResponse wraps the tracking acknowledgment.
type ReportLocationResponse struct {
	Tracking TrackingDTO `json:"tracking"`
}

// ChangeStatusRequest moves an order to the named status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeStatusResponse confirms the applied transition.
type ChangeStatusResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// OrderTrackingResponse is the role-filtered tracking projection of one order.
type OrderTrackingResponse struct {
	OrderID           string   `json:"order_id"`
	CustomerID        string   `json:"customer_id"`
	RiderID           *string  `json:"rider_id"`
	Status            string   `json:"status"`
	DeliveryLatitude  *float64 `json:"delivery_latitude"`
	DeliveryLongitude *float64 `json:"delivery_longitude"`
	RiderLatitude     *float64 `json:"rider_latitude"`
	RiderLongitude    *float64 `json:"rider_longitude"`
	EtaMinutes        *int     `json:"eta_minutes"`
	ReceivedAt        *string  `json:"received_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// TrackPointResponse is one recorded position in an order's track history.
type TrackPointResponse struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	RecordedAt string  `json:"recorded_at"`
}

// ActiveOrderResponse is one row of the dispatch board.
type ActiveOrderResponse struct {
	OrderID        string   `json:"order_id"`
	CustomerID     string   `json:"customer_id"`
	RiderID        *string  `json:"rider_id"`
	Status         string   `json:"status"`
	RiderLatitude  *float64 `json:"rider_latitude"`
	RiderLongitude *float64 `json:"rider_longitude"`
	EtaMinutes     *int     `json:"eta_minutes"`
	UpdatedAt      string   `json:"updated_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func uuidPtrString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func geoPointCoords(p *kernel.GeoPoint) (*float64, *float64) {
	if p == nil {
		return nil, nil
	}
	lat := p.Latitude()
	lon := p.Longitude()
	return &lat, &lon
}

func trackingFromSnapshot(snapshot commands.TrackingSnapshot) TrackingDTO {
	lat := snapshot.RiderPosition.Latitude()
	lon := snapshot.RiderPosition.Longitude()

	return TrackingDTO{
		ID:             snapshot.OrderID.String(),
		Status:         snapshot.Status.String(),
		RiderLatitude:  &lat,
		RiderLongitude: &lon,
		EtaMinutes:     snapshot.EtaMinutes,
		UpdatedAt:      formatTime(snapshot.UpdatedAt),
	}
}

func orderTrackingFromQuery(response queries.GetOrderTrackingQueryResponse) OrderTrackingResponse {
	deliveryLat, deliveryLon := geoPointCoords(response.Delivery)
	riderLat, riderLon := geoPointCoords(response.RiderPosition)

	return OrderTrackingResponse{
		OrderID:           response.ID.String(),
		CustomerID:        response.CustomerID.String(),
		RiderID:           uuidPtrString(response.RiderID),
		Status:            response.Status.String(),
		DeliveryLatitude:  deliveryLat,
		DeliveryLongitude: deliveryLon,
		RiderLatitude:     riderLat,
		RiderLongitude:    riderLon,
		EtaMinutes:        response.EtaMinutes,
		ReceivedAt:        formatTimePtr(response.ReceivedAt),
		UpdatedAt:         formatTime(response.UpdatedAt),
	}
}

func activeOrderFromQuery(response queries.GetActiveOrdersQueryResponse) ActiveOrderResponse {
	riderLat, riderLon := geoPointCoords(response.RiderPosition)

	return ActiveOrderResponse{
		OrderID:        response.ID.String(),
		CustomerID:     response.CustomerID.String(),
		RiderID:        uuidPtrString(response.RiderID),
		Status:         response.Status.String(),
		RiderLatitude:  riderLat,
		RiderLongitude: riderLon,
		EtaMinutes:     response.EtaMinutes,
		UpdatedAt:      formatTime(response.UpdatedAt),
	}
}
