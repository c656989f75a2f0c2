package orderrepo

import (
	"context"
	"errors"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository persists orders across the order_ids, orders and
// order_history tables.
//
// Every Add and Update appends the aggregate's pending events to order_history,
// so the latest history row always matches the order's status.
//
// Example:
//
//	repo := NewGormOrderRepository(tx, uow)
//
//	o, err := repo.Get(ctx, kernel.PackageID(100))
//	if err != nil {
//	    return err
//	}
//	if err := o.UpdateStatus(order.Delivered, "left at door", now); err != nil {
//	    return err
//	}
//	return repo.Update(ctx, o)
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is implemented by the unit of work that owns the
// repository's transaction.
type aggregateTracker interface {
	TrackAggregate(aggregate *order.Order)
}

// NewGormOrderRepository creates a repository that reports saved orders to tracker.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order with its first history entry. It returns an
// order.ErrOrderAlreadyExists error when the package id was used before.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	id := aggregate.PackageID()

	var count int64
	if err := db.Model(&OrderIDDTO{}).Where("package_id = ?", id.Uint64()).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return order.NewOrderAlreadyExistsError(id)
	}

	// The unique index settles races the count above cannot see.
	if err := db.Create(&OrderIDDTO{PackageID: id.Uint64()}).Error; err != nil {
		return translateError(err, id)
	}

	dto := fromDomain(aggregate)
	if err := db.Create(&dto).Error; err != nil {
		return translateError(err, id)
	}

	if err := r.appendHistory(db, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes status and change time, then appends new history entries.
// Sender, recipient and the client times never change after Add.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)

	// A map is used so that Dispatched (zero) is written too.
	result := db.Model(&OrderDTO{}).
		Where("package_id = ?", dto.PackageID).
		Updates(map[string]any{
			"status":          dto.Status,
			"last_changed_at": dto.LastChangedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(aggregate.PackageID())
	}

	if err := r.appendHistory(db, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Get loads an order. On postgres the row is locked until the transaction
// ends, serializing concurrent updates of one package.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.PackageID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if query.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := query.First(&dto, "package_id = ?", id.Uint64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// appendHistory writes one row per pending event. Events already written by
// an earlier Add or Update in the same unit of work are skipped.
func (r *GormOrderRepository) appendHistory(db *gorm.DB, aggregate *order.Order) error {
	events := aggregate.Events()
	if len(events) == 0 {
		return nil
	}

	eventIDs := make([]string, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID().String())
	}

	var written []string
	if err := db.Model(&HistoryEntryDTO{}).Where("event_id IN ?", eventIDs).Pluck("event_id", &written).Error; err != nil {
		return err
	}
	skip := make(map[string]struct{}, len(written))
	for _, id := range written {
		skip[id] = struct{}{}
	}

	rows := make([]HistoryEntryDTO, 0, len(events))
	for _, event := range events {
		if _, ok := skip[event.ID().String()]; ok {
			continue
		}
		rows = append(rows, historyFromEvent(event))
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

// translateError maps a unique violation on the package id to
// order.ErrOrderAlreadyExists. Requires gorm.Config.TranslateError.
func translateError(err error, id kernel.PackageID) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return order.NewOrderAlreadyExistsError(id)
	}
	return err
}
