package order

import (
	"errors"
	"fmt"

	"ordertracker/internal/core/domain/model/kernel"
)

// Ledger rule violations. They are always wrapped in a PackageError.
var (
	// ErrStatusShouldBeDispatched rejects creating an order in another status.
	ErrStatusShouldBeDispatched = errors.New("status should be dispatched")

	// ErrOrderNotFound is returned for a package id that was never created.
	ErrOrderNotFound = errors.New("order not found")

	// ErrCannotUpdateWithTheSameStatus rejects an update that changes nothing.
	ErrCannotUpdateWithTheSameStatus = errors.New("cannot update with the same status")

	// ErrOrderAlreadyExists rejects reusing a package id.
	ErrOrderAlreadyExists = errors.New("order already exists")
)

// PackageError is a ledger rule violation about one package. Kind is one of
// the sentinels above, so callers match with errors.Is and read the package
// with errors.As.
//
// Example:
//
//	var pkgErr *order.PackageError
//	if errors.As(err, &pkgErr) && errors.Is(err, order.ErrOrderNotFound) {
//	    log.Printf("package %s does not exist", pkgErr.PackageID)
//	}
type PackageError struct {
	Kind      error
	PackageID kernel.PackageID
}

// NewStatusShouldBeDispatchedError rejects creating an order in a status other than Dispatched.
func NewStatusShouldBeDispatchedError(id kernel.PackageID) *PackageError {
	return &PackageError{Kind: ErrStatusShouldBeDispatched, PackageID: id}
}

// NewOrderNotFoundError reports a package id with no order.
func NewOrderNotFoundError(id kernel.PackageID) *PackageError {
	return &PackageError{Kind: ErrOrderNotFound, PackageID: id}
}

// NewCannotUpdateWithTheSameStatusError rejects an update that would not change the status.
func NewCannotUpdateWithTheSameStatusError(id kernel.PackageID) *PackageError {
	return &PackageError{Kind: ErrCannotUpdateWithTheSameStatus, PackageID: id}
}

// NewOrderAlreadyExistsError reports a package id that is already taken.
func NewOrderAlreadyExistsError(id kernel.PackageID) *PackageError {
	return &PackageError{Kind: ErrOrderAlreadyExists, PackageID: id}
}

// Error formats as "<kind>: package <id>".
func (e *PackageError) Error() string {
	return fmt.Sprintf("%s: package %s", e.Kind, e.PackageID)
}

// Unwrap returns Kind.
func (e *PackageError) Unwrap() error {
	return e.Kind
}
