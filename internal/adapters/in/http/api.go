package http

import "time"

// Error is the JSON body every failed request returns.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssignOrderRequest asks the fleet to reserve a drone for an order.
// When droneId is set, exactly that drone is reserved; otherwise the
// fleet picks the best available one.
type AssignOrderRequest struct {
	OrderID string `json:"orderId"`
	DroneID string `json:"droneId,omitempty"`
}

// AssignmentResponse reports the chosen drone and its flight estimates.
type AssignmentResponse struct {
	DroneID                string  `json:"droneId"`
	DeliveryLogID          string  `json:"deliveryLogId"`
	DistanceKm             float64 `json:"distanceKm"`
	EtaMinutes             int     `json:"etaMinutes"`
	BatteryRequiredPercent float64 `json:"batteryRequiredPercent"`
}

// TelemetryRequest carries one GPS report from a drone.
type TelemetryRequest struct {
	DroneID        string    `json:"droneId"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	RecordedAt     time.Time `json:"recordedAt"`
	BatteryPercent *float64  `json:"batteryPercent,omitempty"`
	SpeedKmh       *float64  `json:"speedKmh,omitempty"`
	AltitudeMeters *float64  `json:"altitudeMeters,omitempty"`
}

// RegisterDroneRequest registers a new drone for a restaurant.
type RegisterDroneRequest struct {
	RestaurantID  string  `json:"restaurantId"`
	OwnerID       string  `json:"ownerId"`
	Name          string  `json:"name"`
	HomeLatitude  float64 `json:"homeLatitude"`
	HomeLongitude float64 `json:"homeLongitude"`
	MaxPayloadKg  float64 `json:"maxPayloadKg"`
	MaxSpeedKmh   float64 `json:"maxSpeedKmh"`
}

// RegisterDroneResponse returns the generated drone ID.
type RegisterDroneResponse struct {
	DroneID string `json:"droneId"`
}

// DroneStateRequest identifies who asks for a maintenance or ready change.
type DroneStateRequest struct {
	RequesterID string `json:"requesterId"`
}

// CreateOrderRequest places a new order.
type CreateOrderRequest struct {
	CustomerID           string             `json:"customerId"`
	RestaurantID         string             `json:"restaurantId"`
	DestinationLatitude  float64            `json:"destinationLatitude"`
	DestinationLongitude float64            `json:"destinationLongitude"`
	DestinationAddress   string             `json:"destinationAddress"`
	AmountCents          int64              `json:"amountCents"`
	Items                []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderResponse returns the generated order ID.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// UpdateOrderStatusRequest moves an order to a new status as a role.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

// AvailableDrone is one row of the available-drones listing.
type AvailableDrone struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	BatteryPercent  float64 `json:"batteryPercent"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	MaxPayloadKg    float64 `json:"maxPayloadKg"`
	MaxSpeedKmh     float64 `json:"maxSpeedKmh"`
	TotalDeliveries int     `json:"totalDeliveries"`
}

// DeliveryLogResponse is the flight record for an order.
type DeliveryLogResponse struct {
	ID                     string      `json:"id"`
	OrderID                string      `json:"orderId"`
	DroneID                string      `json:"droneId"`
	Status                 string      `json:"status"`
	DestinationLatitude    float64     `json:"destinationLatitude"`
	DestinationLongitude   float64     `json:"destinationLongitude"`
	DestinationAddress     string      `json:"destinationAddress"`
	EstimatedDistanceKm    float64     `json:"estimatedDistanceKm"`
	EstimatedEtaMinutes    int         `json:"estimatedEtaMinutes"`
	ActualDistanceKm       *float64    `json:"actualDistanceKm,omitempty"`
	BatteryConsumedPercent *float64    `json:"batteryConsumedPercent,omitempty"`
	StartedAt              *time.Time  `json:"startedAt,omitempty"`
	ArrivedAt              *time.Time  `json:"arrivedAt,omitempty"`
	EndedAt                *time.Time  `json:"endedAt,omitempty"`
	Samples                []GpsSample `json:"samples"`
}

// GpsSample is one point of a flight trail.
type GpsSample struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	RecordedAt     time.Time `json:"recordedAt"`
	BatteryPercent *float64  `json:"batteryPercent,omitempty"`
	SpeedKmh       *float64  `json:"speedKmh,omitempty"`
	AltitudeMeters *float64  `json:"altitudeMeters,omitempty"`
}
