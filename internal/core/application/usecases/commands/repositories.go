// Package commands contains the operations that change the ledger.
// Every handler follows the same steps: validate the command, open a unit of
// work, load and mutate aggregates through repositories, commit.
package commands

import (
	"context"

	"ordertracker/internal/core/ports"
)

// Unit of Work interfaces give each handler only the repositories it needs.
// ports.UnitOfWork satisfies all of them.
type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LedgerRepoFactory provides the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory provides the event outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// LedgerUoW is used by ledger deployment.
	LedgerUoW interface {
		TxManager
		LedgerRepoFactory
	}

	// LedgerUoWFactory creates a fresh LedgerUoW per command.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// OrderUoW is used by order creation, which needs no owner check.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a fresh OrderUoW per command.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW is used by the event relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates a fresh OutboxUoW per relay run.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW spans the ledger and orders, for operations checking ownership
	// before touching an order.
	UoW interface {
		TxManager
		LedgerRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates a fresh UoW per command.
	UoWFactory interface {
		Create() UoW
	}
)
