package commands

import (
	"errors"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/pkg/guard"
)

// ErrUpdateOrderStatusCommandIsNotConstructed is returned by Validate for a
// zero-value command.
var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is issued on behalf of caller. An anonymous caller
// is accepted here and refused by the ledger.
//
// Example:
//
//	caller, _ := kernel.NewIdentity(r.Header.Get("X-Caller-Identity"))
//	cmd, err := NewUpdateOrderStatusCommand(caller, 100, order.InTransit, "Just transit in Jakarta")
//	if err != nil {
//	    return err
//	}
//	return handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	caller    kernel.Identity
	packageID kernel.PackageID
	status    order.Status
	note      string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand validates the package id and the target status.
// Whether the change is allowed is decided by the handler.
func NewUpdateOrderStatusCommand(
	caller kernel.Identity,
	packageID kernel.PackageID,
	status order.Status,
	note string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		caller: caller,
		note:   note,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// Caller returns the identity the update is issued by.
func (c UpdateOrderStatusCommand) Caller() kernel.Identity {
	return c.caller
}

// PackageID returns the order to update.
func (c UpdateOrderStatusCommand) PackageID() kernel.PackageID {
	return c.packageID
}

// Status returns the requested status.
func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

// Note returns the free-form note stored with the history entry.
func (c UpdateOrderStatusCommand) Note() string {
	return c.note
}

func (c *UpdateOrderStatusCommand) setPackageID(id kernel.PackageID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.packageID = id
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
