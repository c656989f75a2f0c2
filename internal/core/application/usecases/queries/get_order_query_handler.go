package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order straight from the orders table,
// bypassing the aggregate.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, err := NewGetOrderQuery(100)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, order.ErrOrderNotFound) {
//	    return nil // never created
//	}
//	fmt.Printf("package %s is %s\n", resp.PackageID, resp.Status)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler reading through db.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the stored order or an order.ErrOrderNotFound error.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			package_id,
			sender,
			recipient,
			dispatch_time,
			delivery_time,
			status
		FROM orders
		WHERE package_id = ?
	`, query.PackageID().Uint64()).Row()

	var (
		resp      GetOrderQueryResponse
		packageID uint64
		status    int
	)
	err := row.Scan(
		&packageID,
		&resp.Sender,
		&resp.Recipient,
		&resp.DispatchTime,
		&resp.DeliveryTime,
		&status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, order.NewOrderNotFoundError(query.PackageID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.PackageID = kernel.PackageID(packageID)
	resp.Status = order.Status(status)
	return resp, nil
}
