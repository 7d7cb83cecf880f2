package eventbus

import (
	"encoding/json"
	"testing"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent_DroneReturnToBase(t *testing.T) {
	droneID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	raw, err := encodeEvent(ports.DroneReturnToBaseEvent{DroneID: droneID, OrderID: orderID})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "DroneReturnToBase", payload["eventType"])
	assert.Equal(t, droneID.String(), payload["droneId"])
	assert.Equal(t, orderID.String(), payload["orderId"])
}

func TestEncodeEvent_DeliveryCompleted(t *testing.T) {
	orderID := kernel.NewUUID()

	raw, err := encodeEvent(ports.DeliveryCompletedEvent{OrderID: orderID})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "DeliveryCompleted", payload["eventType"])
	assert.Equal(t, orderID.String(), payload["orderId"])
}

func TestEncodeEvent_DroneArrived(t *testing.T) {
	droneID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	raw, err := encodeEvent(ports.DroneArrivedEvent{OrderID: orderID, DroneID: droneID, Timestamp: at})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "DroneArrived", payload["eventType"])
	assert.Equal(t, orderID.String(), payload["orderId"])
	assert.Equal(t, droneID.String(), payload["droneId"])
	assert.Equal(t, "2025-06-01T12:30:00Z", payload["timestamp"])
}

func TestEncodeEvent_OrderConfirmed_NestsStockDecrementLines(t *testing.T) {
	orderID := kernel.NewUUID()
	productID := kernel.NewUUID()

	raw, err := encodeEvent(ports.OrderConfirmedEvent{
		OrderID: orderID,
		Items:   []ports.OrderConfirmedItem{{ProductID: productID, Quantity: 3}},
	})
	require.NoError(t, err)

	var payload struct {
		EventType string `json:"eventType"`
		Payload   struct {
			OrderID string `json:"orderId"`
			Items   []struct {
				ProductID string `json:"productId"`
				Quantity  int    `json:"quantity"`
			} `json:"items"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "OrderConfirmed", payload.EventType)
	assert.Equal(t, orderID.String(), payload.Payload.OrderID)
	require.Len(t, payload.Payload.Items, 1)
	assert.Equal(t, productID.String(), payload.Payload.Items[0].ProductID)
	assert.Equal(t, 3, payload.Payload.Items[0].Quantity)
}

func TestEncodeEvent_PaymentConfirmed(t *testing.T) {
	orderID := kernel.NewUUID()

	raw, err := encodeEvent(ports.PaymentConfirmedEvent{OrderID: orderID})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "PaymentConfirmed", payload["eventType"])
	assert.Equal(t, orderID.String(), payload["orderId"])
}
