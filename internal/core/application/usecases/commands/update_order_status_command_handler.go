package commands

import (
	"context"
	"errors"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/ledger"
	"ordertracker/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler moves an order to a new status on behalf of
// the ledger owner. The status change, the history entry and the
// OrderStatusUpdated event commit together.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, kernel.SystemClock{})
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrUnauthorized):
//	case errors.Is(err, order.ErrOrderNotFound):
//	case errors.Is(err, order.ErrCannotUpdateWithTheSameStatus):
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
// The uow factory must expose both the ledger and the order repositories.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory, clock kernel.Clock) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle checks, in order, that the caller owns the ledger, that the order
// exists and that the status changes. The first failing check is returned
// and nothing is written.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deployed, err := uow.LedgerRepository().Get(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ledger.ErrLedgerNotDeployed
	}
	if err != nil {
		return err
	}

	if err = deployed.Authorize(cmd.Caller()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	if _, err = aggregate.UpdateStatus(cmd.Status(), cmd.Note(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
