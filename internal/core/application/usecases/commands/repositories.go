// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dronefleet/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DroneRepoFactory provides access to the drone repository within a transaction.
	DroneRepoFactory interface {
		DroneRepository() ports.DroneRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryLogRepoFactory provides access to the delivery log repository within a transaction.
	DeliveryLogRepoFactory interface {
		DeliveryLogRepository() ports.DeliveryLogRepository
	}

	// DroneUoW manages transactions for drone-only operations:
	// registration, maintenance, release, and the return-to-base landing.
	DroneUoW interface {
		TxManager
		DroneRepoFactory
	}

	// DroneUoWFactory creates new drone unit of work instances.
	DroneUoWFactory interface {
		Create() DroneUoW
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LogUoW manages transactions for delivery-log-only operations,
	// such as recording arrival at the destination.
	LogUoW interface {
		TxManager
		DeliveryLogRepoFactory
	}

	// LogUoWFactory creates new delivery log unit of work instances.
	LogUoWFactory interface {
		Create() LogUoW
	}

	// DeliveryUoW manages transactions that touch a drone together with its
	// flight record: telemetry ingestion and delivery completion.
	DeliveryUoW interface {
		TxManager
		DroneRepoFactory
		DeliveryLogRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// FleetUoW manages transactions across all three aggregates.
	// Used for commands that coordinate an order with a drone and its
	// flight record, such as assignment and order status changes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   droneRepo := uow.DroneRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	FleetUoW interface {
		TxManager
		DroneRepoFactory
		OrderRepoFactory
		DeliveryLogRepoFactory
	}

	// FleetUoWFactory creates new unit of work instances for cross-aggregate operations.
	FleetUoWFactory interface {
		Create() FleetUoW
	}
)
