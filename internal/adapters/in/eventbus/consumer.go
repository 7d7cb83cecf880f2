// Package eventbus provides the Kafka consumer that feeds bus events into
// the command layer. Delivery is at-least-once and unordered across
// channels: every dispatch target is idempotent, and a message that cannot
// be applied is logged and dropped rather than blocking the partition.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dronefleet/internal/core/application/usecases/commands"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/ports"

	"github.com/IBM/sarama"
)

// Consumer subscribes to the drone, delivery, and payment channels and
// dispatches their events to command handlers.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler *groupHandler
	topics  []string
}

// NewConsumer connects a consumer group to the given brokers.
//
// The transit delay is the simulated flight time home: a DroneReturnToBase
// event never executes the transit inline, it only records the due time on
// the scheduler and returns, so one drone's flight cannot stall the
// subscription.
func NewConsumer(
	brokers []string,
	groupID string,
	confirmPayment commands.ConfirmPaymentCommandHandler,
	markDelivered commands.MarkDeliveredCommandHandler,
	scheduler ports.ReturnScheduler,
	transitDelay time.Duration,
) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer group: %w", err)
	}

	return &Consumer{
		group: group,
		handler: &groupHandler{
			confirmPayment: confirmPayment,
			markDelivered:  markDelivered,
			scheduler:      scheduler,
			transitDelay:   transitDelay,
		},
		topics: []string{
			ports.ChannelDroneEvents,
			ports.ChannelDeliveryEvents,
			ports.ChannelPaymentEvents,
		},
	}, nil
}

// Run consumes until the context is cancelled. Consume returns whenever the
// group rebalances, so it is called in a loop.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		if err := c.group.Consume(ctx, c.topics, c.handler); err != nil {
			slog.ErrorContext(ctx, "consumer group session failed", "error", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close shuts down the underlying consumer group.
func (c *Consumer) Close() error {
	return c.group.Close()
}

// envelope is the common JSON shape of bus events; fields not carried by a
// given event type stay empty.
type envelope struct {
	EventType string `json:"eventType"`
	DroneID   string `json:"droneId"`
	OrderID   string `json:"orderId"`
}

type groupHandler struct {
	confirmPayment commands.ConfirmPaymentCommandHandler
	markDelivered  commands.MarkDeliveredCommandHandler
	scheduler      ports.ReturnScheduler
	transitDelay   time.Duration
}

func (*groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (*groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(
	session sarama.ConsumerGroupSession,
	claim sarama.ConsumerGroupClaim,
) error {
	for msg := range claim.Messages() {
		if err := h.dispatch(session.Context(), msg.Value); err != nil {
			slog.ErrorContext(session.Context(), "dropping undeliverable event",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err)
		}
		session.MarkMessage(msg, "")
	}
	return nil
}

// dispatch routes one event payload to its command handler. Redeliveries are
// absorbed by the handlers' idempotency, so a nil return here does not mean
// the event changed anything.
func (h *groupHandler) dispatch(ctx context.Context, payload []byte) error {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("failed to decode event payload: %w", err)
	}

	switch env.EventType {
	case "PaymentConfirmed":
		return h.handlePaymentConfirmed(ctx, env)
	case "DeliveryCompleted":
		return h.handleDeliveryCompleted(ctx, env)
	case "DroneReturnToBase":
		return h.handleDroneReturnToBase(ctx, env)
	case "DroneArrived":
		return h.handleDroneArrived(ctx, env)
	default:
		slog.WarnContext(ctx, "ignoring event of unknown type", "eventType", env.EventType)
		return nil
	}
}

func (h *groupHandler) handlePaymentConfirmed(ctx context.Context, env envelope) error {
	orderID, err := kernel.UUIDFromString(env.OrderID)
	if err != nil {
		return fmt.Errorf("invalid orderId in PaymentConfirmed event: %w", err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return err
	}
	return h.confirmPayment.Handle(ctx, cmd)
}

// handleDroneArrived moves the order to Delivered when its drone reaches
// the destination. MarkDelivered absorbs redeliveries and events arriving
// after a DeliveryCompleted for the same order.
func (h *groupHandler) handleDroneArrived(ctx context.Context, env envelope) error {
	orderID, err := kernel.UUIDFromString(env.OrderID)
	if err != nil {
		return fmt.Errorf("invalid orderId in DroneArrived event: %w", err)
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return err
	}
	return h.markDelivered.Handle(ctx, cmd)
}

func (h *groupHandler) handleDeliveryCompleted(ctx context.Context, env envelope) error {
	orderID, err := kernel.UUIDFromString(env.OrderID)
	if err != nil {
		return fmt.Errorf("invalid orderId in DeliveryCompleted event: %w", err)
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return err
	}
	return h.markDelivered.Handle(ctx, cmd)
}

func (h *groupHandler) handleDroneReturnToBase(ctx context.Context, env envelope) error {
	droneID, err := kernel.UUIDFromString(env.DroneID)
	if err != nil {
		return fmt.Errorf("invalid droneId in DroneReturnToBase event: %w", err)
	}

	h.scheduler.Schedule(droneID, time.Now().Add(h.transitDelay))
	slog.DebugContext(ctx, "scheduled drone return", "droneId", droneID.String())
	return nil
}
