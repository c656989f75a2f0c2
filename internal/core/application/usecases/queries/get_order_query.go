package queries

import (
	"errors"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned by Validate for a zero-value query.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery asks for the current state of one order.
type GetOrderQuery struct {
	packageID kernel.PackageID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery validates the package id.
func NewGetOrderQuery(packageID kernel.PackageID) (GetOrderQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// PackageID returns the order to read.
func (q GetOrderQuery) PackageID() kernel.PackageID {
	return q.packageID
}

// GetOrderQueryResponse is the read model of an order. Times are returned
// exactly as they were submitted.
type GetOrderQueryResponse struct {
	PackageID    kernel.PackageID
	Sender       string
	Recipient    string
	DispatchTime int64
	DeliveryTime int64
	Status       order.Status
}
