package ledgerrepo

import (
	"context"
	"errors"

	"ordertracker/internal/core/domain/model/ledger"
	"ordertracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLedgerRepository stores the ledger deployment.
type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Add returns ledger.ErrLedgerAlreadyDeployed when the row already exists.
func (r *GormLedgerRepository) Add(ctx context.Context, aggregate *ledger.Ledger) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ledger.ErrLedgerAlreadyDeployed
		}
		return err
	}
	return nil
}

// Get returns an errs.ErrObjectNotFound error before the ledger is deployed.
func (r *GormLedgerRepository) Get(ctx context.Context) (*ledger.Ledger, error) {
	var dto LedgerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", singletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ledger", "deployment")
		}
		return nil, err
	}
	return toDomain(dto)
}
