// Package eventbus provides the Kafka implementation of the event publisher
// port. Events are serialized to JSON envelopes carrying an eventType
// discriminator and published to the channel (topic) the event names, keyed
// per entity so a single drone's or order's events stay ordered within their
// partition. Delivery is at-least-once; consumers must be idempotent.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dronefleet/internal/core/ports"

	"github.com/IBM/sarama"
)

// SaramaPublisher publishes events through a synchronous Kafka producer.
// Synchronous sends keep the failure visible to the caller, which logs the
// loss; the already-committed local state change is never rolled back.
type SaramaPublisher struct {
	producer sarama.SyncProducer
}

// NewSaramaPublisher connects a synchronous producer to the given brokers.
func NewSaramaPublisher(brokers []string) (*SaramaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &SaramaPublisher{producer: producer}, nil
}

// Publish serializes the event and sends it to its channel.
func (p *SaramaPublisher) Publish(_ context.Context, event ports.Event) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: event.Channel(),
		Key:   sarama.StringEncoder(event.Key()),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType(), err)
	}

	return nil
}

// Close shuts down the underlying producer.
func (p *SaramaPublisher) Close() error {
	return p.producer.Close()
}

type droneReturnToBasePayload struct {
	EventType string `json:"eventType"`
	DroneID   string `json:"droneId"`
	OrderID   string `json:"orderId"`
}

type droneArrivedPayload struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	DroneID   string    `json:"droneId"`
	Timestamp time.Time `json:"timestamp"`
}

type deliveryCompletedPayload struct {
	EventType string `json:"eventType"`
	OrderID   string `json:"orderId"`
}

type orderConfirmedPayload struct {
	EventType string              `json:"eventType"`
	Payload   orderConfirmedInner `json:"payload"`
}

type orderConfirmedInner struct {
	OrderID string               `json:"orderId"`
	Items   []orderConfirmedItem `json:"items"`
}

type orderConfirmedItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type paymentConfirmedPayload struct {
	EventType string `json:"eventType"`
	OrderID   string `json:"orderId"`
}

// encodeEvent maps a domain event to its wire envelope.
func encodeEvent(event ports.Event) ([]byte, error) {
	switch e := event.(type) {
	case ports.DroneReturnToBaseEvent:
		return json.Marshal(droneReturnToBasePayload{
			EventType: e.EventType(),
			DroneID:   e.DroneID.String(),
			OrderID:   e.OrderID.String(),
		})
	case ports.DroneArrivedEvent:
		return json.Marshal(droneArrivedPayload{
			EventType: e.EventType(),
			OrderID:   e.OrderID.String(),
			DroneID:   e.DroneID.String(),
			Timestamp: e.Timestamp,
		})
	case ports.DeliveryCompletedEvent:
		return json.Marshal(deliveryCompletedPayload{
			EventType: e.EventType(),
			OrderID:   e.OrderID.String(),
		})
	case ports.OrderConfirmedEvent:
		items := make([]orderConfirmedItem, 0, len(e.Items))
		for _, item := range e.Items {
			items = append(items, orderConfirmedItem{
				ProductID: item.ProductID.String(),
				Quantity:  item.Quantity,
			})
		}
		return json.Marshal(orderConfirmedPayload{
			EventType: e.EventType(),
			Payload: orderConfirmedInner{
				OrderID: e.OrderID.String(),
				Items:   items,
			},
		})
	case ports.PaymentConfirmedEvent:
		return json.Marshal(paymentConfirmedPayload{
			EventType: e.EventType(),
			OrderID:   e.OrderID.String(),
		})
	default:
		return nil, fmt.Errorf("unknown event type %T", event)
	}
}
