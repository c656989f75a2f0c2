// Package ports defines the contracts between the ledger core and its
// adapters: repositories bound to a unit of work, the outbox, and the event
// publisher. Implementations live under internal/adapters/out.
package ports

import (
	"context"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates together with their history.
//
// Implementations must write the history entries raised by an aggregate in the
// same transaction as the aggregate itself, so reads never see an order whose
// latest history status differs from its current status.
type OrderRepository interface {
	// Add stores a new order, appends it to the insertion ordered id list and
	// writes the history entries it raised. Fails with order.ErrOrderAlreadyExists
	// when the package id is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the new status and appends the pending history entries.
	// Fails with order.ErrOrderNotFound when the order does not exist.
	//
	// Example:
	//   o, err := repo.Get(ctx, id)
	//   if err != nil {
	//       return err
	//   }
	//   if _, err := o.UpdateStatus(order.Delivered, "signed by recipient", clock.Now()); err != nil {
	//       return err
	//   }
	//   return repo.Update(ctx, o)
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order, locking its row for the rest of the transaction where
	// the store supports row locks. Fails with order.ErrOrderNotFound.
	Get(ctx context.Context, id kernel.PackageID) (*order.Order, error)
}
