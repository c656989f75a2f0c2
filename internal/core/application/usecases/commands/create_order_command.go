package commands

import (
	"errors"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned by Validate for a zero-value
// command that bypassed NewCreateOrderCommand.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand carries the order as submitted. The status is kept as
// given; the aggregate decides whether it is acceptable.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(100, "Jakarta warehouse", "Bandung store",
//	    1709600000, 1709686400, order.Dispatched)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, kernel.SystemClock{})
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	packageID    kernel.PackageID
	sender       string
	recipient    string
	dispatchTime int64
	deliveryTime int64
	status       order.Status

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the package id and that status is one of the
// known statuses. Sender, recipient and the two times are taken verbatim.
func NewCreateOrderCommand(
	packageID kernel.PackageID,
	sender, recipient string,
	dispatchTime, deliveryTime int64,
	status order.Status,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		sender:       sender,
		recipient:    recipient,
		dispatchTime: dispatchTime,
		deliveryTime: deliveryTime,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setStatus(status),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// PackageID returns the caller assigned identifier of the package.
func (c CreateOrderCommand) PackageID() kernel.PackageID {
	return c.packageID
}

// Sender returns the free-form sender description.
func (c CreateOrderCommand) Sender() string {
	return c.sender
}

// Recipient returns the free-form recipient description.
func (c CreateOrderCommand) Recipient() string {
	return c.recipient
}

// DispatchTime returns the caller supplied dispatch timestamp.
func (c CreateOrderCommand) DispatchTime() int64 {
	return c.dispatchTime
}

// DeliveryTime returns the caller supplied expected delivery timestamp.
func (c CreateOrderCommand) DeliveryTime() int64 {
	return c.deliveryTime
}

// Status returns the requested initial status.
func (c CreateOrderCommand) Status() order.Status {
	return c.status
}

func (c *CreateOrderCommand) setPackageID(id kernel.PackageID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.packageID = id
	return nil
}

func (c *CreateOrderCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
