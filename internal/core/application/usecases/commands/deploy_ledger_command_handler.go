package commands

import (
	"context"
	"errors"
	"fmt"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/ledger"
	"ordertracker/internal/pkg/errs"
)

// DeployLedgerCommandHandler records the ledger owner. The service runs it at
// startup with the configured owner.
//
// Example:
//
//	owner, _ := kernel.NewIdentity(cfg.LedgerOwner)
//	cmd, _ := NewDeployLedgerCommand(owner)
//
//	handler := NewDeployLedgerCommandHandler(uowFactory, kernel.SystemClock{})
//	if err := handler.Handle(ctx, cmd); errors.Is(err, ledger.ErrLedgerAlreadyDeployed) {
//	    return fmt.Errorf("ledger belongs to someone else: %w", err)
//	}
type DeployLedgerCommandHandler struct {
	uowFactory LedgerUoWFactory
	clock      kernel.Clock
}

// NewDeployLedgerCommandHandler creates a handler for ledger deployment.
func NewDeployLedgerCommandHandler(uowFactory LedgerUoWFactory, clock kernel.Clock) DeployLedgerCommandHandler {
	return DeployLedgerCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle records the owner on first deployment. Deploying again with the same
// owner succeeds without changes; another owner gets ErrLedgerAlreadyDeployed.
func (h *DeployLedgerCommandHandler) Handle(ctx context.Context, cmd DeployLedgerCommand) error {
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

	repo := uow.LedgerRepository()
	existing, err := repo.Get(ctx)
	switch {
	case err == nil:
		if err = existing.Redeploy(cmd.Owner()); err != nil {
			return fmt.Errorf("%w: owner is %s", err, existing.Owner())
		}
		return nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	deployed, err := ledger.NewLedger(cmd.Owner(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, deployed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
