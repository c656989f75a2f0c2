// Package storage implements the ledger store on GORM: one Unit of Work per
// command, repositories bound to its transaction, and an outbox flushed on
// commit.
//
// Usage:
//
//	uow := storage.NewGormUnitOfWorkFactory(db).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin run outside any transaction.
//
// Outbox:
//
// Orders saved through OrderRepository are tracked by the unit of work. On
// Commit their pending events are inserted into ledger_events inside the same
// transaction, so an event exists if and only if its change was committed.
// The relay job later publishes them and marks them published.
//
// Concurrency:
//   - A unit of work belongs to one goroutine and one command
//   - On postgres OrderRepository.Get locks the order row until commit
//   - On sqlite the pool is limited to one connection, which serializes writers
package storage

import (
	"context"
	"fmt"

	"ordertracker/internal/adapters/out/storage/ledgerrepo"
	"ordertracker/internal/adapters/out/storage/orderrepo"
	"ordertracker/internal/adapters/out/storage/outboxrepo"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates a fresh GormUnitOfWork per command. The
// factory is safe for concurrent use. The units it creates are not.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory binds the factory to db.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps one GORM transaction. Orders saved through its
// OrderRepository are tracked so that their events reach the outbox on Commit.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB

	// trackedAggregates are orders saved in this unit of work, in save order,
	// without duplicates.
	trackedAggregates []*order.Order
}

// Begin opens a transaction bound to ctx. It is a no-op when a transaction is
// already open, so nested use cases can share one unit of work.
//
// Example:
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}
	return nil
}

// Commit writes the events of every tracked aggregate to the outbox inside
// the transaction, commits, and then clears the aggregates' events.
//
// Returns:
//   - gorm.ErrInvalidTransaction when no transaction is open
//   - the outbox insert error, leaving the transaction open for Rollback
//   - the commit error, after which the transaction is closed
//
// Aggregate events are cleared only after a successful commit, so a failed
// commit can be retried in a new unit of work without losing events.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	outbox := outboxrepo.NewGormOutboxRepository(uow.tx)
	for _, aggregate := range uow.trackedAggregates {
		if err := outbox.Add(ctx, aggregate.Events()...); err != nil {
			return fmt.Errorf("write events of package %s to outbox: %w", aggregate.PackageID(), err)
		}
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, aggregate := range uow.trackedAggregates {
		aggregate.ClearEvents()
	}
	uow.trackedAggregates = nil
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates. Their
// pending events stay on the aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = nil
	return err
}

// LedgerRepository returns a repository bound to the open transaction, if any.
func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerrepo.NewGormLedgerRepository(uow.conn())
}

// OrderRepository returns a repository bound to the open transaction, if any.
// Saved orders are tracked by this unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OutboxRepository returns a repository bound to the open transaction, if any.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate is called by repositories after an order was saved. An
// aggregate saved twice is tracked once, keeping its first position.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *order.Order) {
	for _, tracked := range uow.trackedAggregates {
		if tracked == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

// conn returns the open transaction, or the plain connection before Begin.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
