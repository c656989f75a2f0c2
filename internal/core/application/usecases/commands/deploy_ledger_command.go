package commands

import (
	"errors"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/pkg/guard"
)

// ErrDeployLedgerCommandIsNotConstructed is returned by Validate for a zero-value
// command.
var ErrDeployLedgerCommandIsNotConstructed = errors.New(
	"DeployLedgerCommand must be created via NewDeployLedgerCommand constructor",
)

// DeployLedgerCommand names the identity that owns the ledger. Only the owner
// may update order statuses.
type DeployLedgerCommand struct { //nolint:recvcheck //using for validation
	owner kernel.Identity

	guard guard.ConstructorGuard
}

// NewDeployLedgerCommand requires a non-anonymous owner.
func NewDeployLedgerCommand(owner kernel.Identity) (DeployLedgerCommand, error) {
	if err := owner.Validate(); err != nil {
		return DeployLedgerCommand{}, err
	}

	return DeployLedgerCommand{
		owner: owner,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeployLedgerCommand) Validate() error {
	return c.guard.Validate(ErrDeployLedgerCommandIsNotConstructed)
}

// Owner returns the identity to record as ledger owner.
func (c DeployLedgerCommand) Owner() kernel.Identity {
	return c.owner
}
