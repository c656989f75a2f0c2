// Package ledger models the deployment of the order ledger: who owns it and
// therefore who may change order statuses.
package ledger

import (
	"errors"
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/pkg/errs"
)

var (
	// ErrLedgerIsNotConstructed is returned by Validate for a zero-value ledger.
	ErrLedgerIsNotConstructed = errors.New("Ledger must be created via NewLedger or RestoreLedger")

	// ErrLedgerNotDeployed is returned by mutations issued before deployment.
	ErrLedgerNotDeployed = errors.New("ledger is not deployed")

	// ErrLedgerAlreadyDeployed is returned when a second owner tries to deploy.
	ErrLedgerAlreadyDeployed = errors.New("ledger is already deployed by another owner")
)

// Ledger is the singleton deployment record. Exactly one owner exists for the
// lifetime of the store.
//
// Example:
//
//	l, err := ledger.NewLedger(owner, clock.Now())
//	if err != nil {
//	    return err
//	}
//	if err := l.Authorize(caller); errors.Is(err, errs.ErrUnauthorized) {
//	    return err // only the owner may update statuses
//	}
type Ledger struct {
	// owner is the only identity allowed to update statuses
	owner kernel.Identity

	// deployedAt is the ledger time of the first deployment, in UTC
	deployedAt time.Time

	isConstructed bool
}

// NewLedger deploys a ledger owned by owner.
//
// Parameters:
//   - owner: deploying identity, must not be anonymous
//   - deployedAt: ledger time of the deployment
//
// Returns:
//   - *Ledger: the deployed ledger
//   - error: errs.ErrValueIsRequired when owner is anonymous
func NewLedger(owner kernel.Identity, deployedAt time.Time) (*Ledger, error) {
	return RestoreLedger(owner, deployedAt)
}

// RestoreLedger rebuilds a ledger from storage. It applies the same checks as
// NewLedger.
func RestoreLedger(owner kernel.Identity, deployedAt time.Time) (*Ledger, error) {
	if err := owner.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	return &Ledger{
		owner:         owner,
		deployedAt:    deployedAt.UTC(),
		isConstructed: true,
	}, nil
}

// Validate rejects nil and zero-value ledgers.
func (l *Ledger) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLedgerIsNotConstructed
	}
	return nil
}

func (l *Ledger) Owner() kernel.Identity {
	return l.owner
}

func (l *Ledger) DeployedAt() time.Time {
	return l.deployedAt
}

// Redeploy succeeds only for the current owner, which makes deployment
// idempotent. Any other identity gets ErrLedgerAlreadyDeployed.
func (l *Ledger) Redeploy(owner kernel.Identity) error {
	if !l.owner.IsEqual(owner) {
		return ErrLedgerAlreadyDeployed
	}
	return nil
}

// Authorize allows mutations by the owner only.
//
// Returns:
//   - nil for the owner
//   - an errs.UnauthorizedError naming caller for anyone else, including
//     the anonymous caller
//   - ErrLedgerIsNotConstructed for a zero-value ledger
func (l *Ledger) Authorize(caller kernel.Identity) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if !l.owner.IsEqual(caller) {
		return errs.NewUnauthorizedError(caller.String())
	}
	return nil
}
