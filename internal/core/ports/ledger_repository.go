package ports

import (
	"context"

	"ordertracker/internal/core/domain/model/ledger"
)

// LedgerRepository persists the single Ledger deployment.
type LedgerRepository interface {
	// Add records the deployment. A ledger can be added once.
	Add(ctx context.Context, aggregate *ledger.Ledger) error

	// Get returns the deployed ledger or an errs.ObjectNotFoundError.
	Get(ctx context.Context) (*ledger.Ledger, error)
}
