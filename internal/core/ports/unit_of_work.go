package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and binds repositories to the transaction.
// Client code must explicitly manage the transaction lifecycle; row locks
// taken by DroneRepository.GetForUpdate are held until Commit or Rollback.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// DroneRepository returns a DroneRepository bound to the current
	// transaction.
	DroneRepository() DroneRepository

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// DeliveryLogRepository returns a DeliveryLogRepository bound to the
	// current transaction.
	DeliveryLogRepository() DeliveryLogRepository
}
