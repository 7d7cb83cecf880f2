// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work maintains one database transaction across the
// drone, order, and delivery log repositories, so a reservation, its order
// status change, and the opened flight record commit or roll back together.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.DroneRepository().Update(ctx, drone); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Row locks taken with DroneRepository().GetForUpdate are held until Commit
// or Rollback, which is what serializes concurrent reservations of the same
// drone. Keep transactions short; each concurrent operation must use its own
// UnitOfWork instance.
package postgres

import (
	"context"

	"dronefleet/internal/adapters/out/postgres/deliverylogrepo"
	"dronefleet/internal/adapters/out/postgres/dronerepo"
	"dronefleet/internal/adapters/out/postgres/orderrepo"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances over a shared GORM
// database connection. Each business operation gets a fresh instance with
// its own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection is shared by all created instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the drone,
// order, and delivery log repositories. It also tracks every aggregate
// modified during the transaction, enabling post-commit processing such as
// domain event publication.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations execute within this transaction context.
// Calling Begin again on an open instance is a no-op, not a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and
// releases any row locks it holds. After commit, the transaction is closed
// and cannot be reused.
//
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction and
// releases any row locks it holds. After rollback, the transaction is closed
// and cannot be reused.
//
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// DroneRepository provides access to drone persistence operations within the
// unit of work. Operations execute within the current transaction if one is
// active, otherwise against the main database connection.
func (uow *GormUnitOfWork) DroneRepository() ports.DroneRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return dronerepo.NewGormDroneRepository(db, uow)
}

// OrderRepository provides access to order persistence operations within the
// unit of work. Operations execute within the current transaction if one is
// active, otherwise against the main database connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// DeliveryLogRepository provides access to delivery log persistence
// operations within the unit of work. Operations execute within the current
// transaction if one is active, otherwise against the main database
// connection.
func (uow *GormUnitOfWork) DeliveryLogRepository() ports.DeliveryLogRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return deliverylogrepo.NewGormDeliveryLogRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it on every Add and Update; the
// tracked aggregates become available for post-transaction processing.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
