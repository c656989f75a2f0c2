package outboxrepo

import (
	"context"
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOutboxRepository reads and writes the ledger_events outbox.
//
// Events are written by GormUnitOfWork.Commit in the same transaction as the
// order change, then relayed by the outbox job:
//
//	repo := NewGormOutboxRepository(db)
//
//	events, err := repo.GetUnpublished(ctx, 100)
//	if err != nil {
//	    return err
//	}
//	// publish events...
//	return repo.MarkPublished(ctx, time.Now(), ids...)
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a repository on db or an open transaction.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores events in the given order. No events is a no-op.
func (r *GormOutboxRepository) Add(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, fromDomain(event))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetUnpublished returns up to limit events that were never marked, oldest
// first. A non-positive limit returns nothing.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]order.Event, error) {
	if limit <= 0 {
		return nil, nil
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// MarkPublished stamps the given events. Unknown ids are ignored, which keeps
// the call idempotent.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, publishedAt time.Time, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	eventIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		eventIDs = append(eventIDs, id.String())
	}

	return r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("event_id IN ?", eventIDs).
		Update("published_at", publishedAt.UnixMicro()).Error
}
