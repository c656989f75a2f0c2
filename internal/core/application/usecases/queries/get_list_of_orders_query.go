package queries

import (
	"errors"

	"ordertracker/internal/pkg/guard"
)

// ErrGetListOfOrdersQueryIsNotConstructed is returned by Validate for a zero-value query.
var ErrGetListOfOrdersQueryIsNotConstructed = errors.New(
	"GetListOfOrdersQuery must be created via NewGetListOfOrdersQuery constructor",
)

// GetListOfOrdersQuery asks for every package id on the ledger.
type GetListOfOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetListOfOrdersQuery creates the query. It takes no parameters.
func NewGetListOfOrdersQuery() GetListOfOrdersQuery {
	return GetListOfOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetListOfOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetListOfOrdersQueryIsNotConstructed)
}
