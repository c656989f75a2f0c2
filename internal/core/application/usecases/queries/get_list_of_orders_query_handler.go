package queries

import (
	"context"

	"ordertracker/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetListOfOrdersQueryHandler lists package ids from order_ids, whose
// auto-increment key preserves creation order.
type GetListOfOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetListOfOrdersQueryHandler creates a handler reading through db.
func NewGetListOfOrdersQueryHandler(db *gorm.DB) GetListOfOrdersQueryHandler {
	return GetListOfOrdersQueryHandler{db: db}
}

// Handle returns every package id ever created, in creation order.
func (h GetListOfOrdersQueryHandler) Handle(ctx context.Context, query GetListOfOrdersQuery) ([]kernel.PackageID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT package_id
		FROM order_ids
		ORDER BY seq
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.PackageID, 0)
	for rows.Next() {
		var id uint64
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, kernel.PackageID(id))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
