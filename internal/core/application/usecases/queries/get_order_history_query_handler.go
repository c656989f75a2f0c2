package queries

import (
	"context"
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's history from the
// order_history table.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	query, _ := NewGetOrderHistoryQuery(100)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, entry := range history {
//	    fmt.Println(entry.UpdatedTime, entry.Status, entry.Note)
//	}
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler reading through db.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the history oldest first. A known order always has at least
// its creation entry; an unknown one fails with order.ErrOrderNotFound.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	id := query.PackageID()

	var exists int64
	if err := db.Raw(`SELECT COUNT(*) FROM orders WHERE package_id = ?`, id.Uint64()).Scan(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, order.NewOrderNotFoundError(id)
	}

	rows, err := db.Raw(`
		SELECT
			package_id,
			status,
			note,
			updated_time
		FROM order_history
		WHERE package_id = ?
		ORDER BY id
	`, id.Uint64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]GetOrderHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			entry       GetOrderHistoryQueryResponse
			packageID   uint64
			status      int
			updatedTime int64
		)
		if err = rows.Scan(&packageID, &status, &entry.Note, &updatedTime); err != nil {
			return nil, err
		}

		entry.PackageID = kernel.PackageID(packageID)
		entry.Status = order.Status(status)
		entry.UpdatedTime = time.UnixMicro(updatedTime).UTC()
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
