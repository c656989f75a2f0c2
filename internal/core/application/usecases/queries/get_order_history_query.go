package queries

import (
	"errors"
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/pkg/guard"
)

// ErrGetOrderHistoryQueryIsNotConstructed is returned by Validate for a zero-value query.
var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery asks for every status an order went through.
type GetOrderHistoryQuery struct {
	packageID kernel.PackageID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery validates the package id.
func NewGetOrderHistoryQuery(packageID kernel.PackageID) (GetOrderHistoryQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// PackageID returns the order whose history is read.
func (q GetOrderHistoryQuery) PackageID() kernel.PackageID {
	return q.packageID
}

// GetOrderHistoryQueryResponse is one history line. UpdatedTime is the time
// the ledger recorded the change, in UTC.
type GetOrderHistoryQueryResponse struct {
	PackageID   kernel.PackageID
	Status      order.Status
	Note        string
	UpdatedTime time.Time
}
