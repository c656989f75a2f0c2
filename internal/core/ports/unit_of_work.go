package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command. Units are not shared
// between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups repository calls into one transaction. Events raised by
// aggregates the repositories saved are written to the outbox on Commit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit flushes pending events and commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	LedgerRepository() LedgerRepository

	OrderRepository() OrderRepository

	OutboxRepository() OutboxRepository
}
