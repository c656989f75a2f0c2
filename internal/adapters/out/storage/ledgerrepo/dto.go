// Package ledgerrepo stores the single ledger deployment row.
package ledgerrepo

import (
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/ledger"
)

// singletonID is the primary key of the only ledger row.
const singletonID = 1

// LedgerDTO is the single deployment row.
type LedgerDTO struct {
	ID    uint   `gorm:"primaryKey;autoIncrement:false"`
	Owner string `gorm:"not null"`
	// DeployedAt is unix microseconds.
	DeployedAt int64 `gorm:"not null"`
}

func (LedgerDTO) TableName() string {
	return "ledgers"
}

func fromDomain(aggregate *ledger.Ledger) LedgerDTO {
	return LedgerDTO{
		ID:         singletonID,
		Owner:      aggregate.Owner().String(),
		DeployedAt: aggregate.DeployedAt().UnixMicro(),
	}
}

func toDomain(dto LedgerDTO) (*ledger.Ledger, error) {
	owner, err := kernel.NewIdentity(dto.Owner)
	if err != nil {
		return nil, err
	}
	return ledger.RestoreLedger(owner, time.UnixMicro(dto.DeployedAt).UTC())
}
