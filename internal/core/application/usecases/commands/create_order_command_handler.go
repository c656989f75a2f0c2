package commands

import (
	"context"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places new orders on the ledger. The order, its
// first history entry and the OrderCreated event are written in one
// transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, kernel.SystemClock{})
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    switch {
//	    case errors.Is(err, order.ErrStatusShouldBeDispatched):
//	        // rejected, nothing stored
//	    case errors.Is(err, order.ErrOrderAlreadyExists):
//	        // the package id is taken
//	    }
//	    return err
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// The clock stamps the first history entry.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle places the order on the ledger with its first history entry.
// Returns StatusShouldBeDispatched for any other initial status and
// OrderAlreadyExists for a known package id. Nothing is written when the order
// is rejected.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.PackageID(),
		cmd.Sender(),
		cmd.Recipient(),
		cmd.DispatchTime(),
		cmd.DeliveryTime(),
		cmd.Status(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
