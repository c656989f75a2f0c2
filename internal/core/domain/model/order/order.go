package order

import (
	"errors"
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was declared as a zero
	// value instead of being built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for one shipped package. It owns the package's
// current status and raises one Event per history entry it appends.
//
// Order follows these invariants:
//   - packageID, sender, recipient, dispatchTime and deliveryTime never change
//   - a new order starts Dispatched
//   - every status change differs from the previous status
//   - updatedAt never goes backwards
//
// Fields are private. State changes only through UpdateStatus, so the
// invariants hold for every instance that passes Validate.
type Order struct {
	// packageID is the caller assigned id, unique across the ledger
	packageID kernel.PackageID

	// sender and recipient are free text and may be empty
	sender    string
	recipient string

	// dispatchTime and deliveryTime are client supplied unix seconds,
	// stored and returned unchanged
	dispatchTime int64
	deliveryTime int64

	// status is the latest delivery state
	status Status

	// updatedAt is the time of the latest history entry.
	updatedAt time.Time

	// events holds changes not yet handed to the outbox.
	events []Event

	// isConstructed ensures the order came from a constructor
	isConstructed bool
}

// NewOrder places a new package on the ledger and raises an OrderCreated
// event carrying the first history entry.
//
// Parameters:
//   - id: package id, must be between 1 and math.MaxInt64
//   - sender, recipient: free text
//   - dispatchTime, deliveryTime: unix seconds, must not be negative
//   - status: requested initial status, must be Dispatched
//   - createdAt: ledger time written into the first history entry
//
// Returns:
//   - *Order: the new order in Dispatched status
//   - error: a PackageError wrapping ErrStatusShouldBeDispatched when status
//     is anything else, or the joined field validation errors
//
// The status is checked before the remaining fields, so a wrong status is
// reported even when other fields are invalid too.
//
// Example:
//
//	o, err := order.NewOrder(100, "alice", "bob", 1700000000, 1700086400, order.Dispatched, clock.Now())
//	if errors.Is(err, order.ErrStatusShouldBeDispatched) {
//	    // reject the request
//	}
func NewOrder(
	id kernel.PackageID,
	sender, recipient string,
	dispatchTime, deliveryTime int64,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	if status != Dispatched {
		return nil, NewStatusShouldBeDispatchedError(id)
	}

	o, err := RestoreOrder(id, sender, recipient, dispatchTime, deliveryTime, Dispatched, createdAt)
	if err != nil {
		return nil, err
	}

	if err := o.raise(OrderCreated, Dispatched, "", o.updatedAt); err != nil {
		return nil, err
	}
	return o, nil
}

// RestoreOrder rebuilds an order from storage without raising events.
// Repositories use it. Application code creates orders with NewOrder.
//
// Any valid status is accepted and updatedAt is normalized to UTC.
func RestoreOrder(
	id kernel.PackageID,
	sender, recipient string,
	dispatchTime, deliveryTime int64,
	status Status,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		sender:        sender,
		recipient:     recipient,
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setPackageID(id),
		o.setTimes(dispatchTime, deliveryTime),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed for a nil or zero-value order
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// PackageID returns the order's package id.
func (o *Order) PackageID() kernel.PackageID {
	return o.packageID
}

func (o *Order) Sender() string {
	return o.sender
}

func (o *Order) Recipient() string {
	return o.recipient
}

// DispatchTime returns the client supplied dispatch time in unix seconds.
func (o *Order) DispatchTime() int64 {
	return o.dispatchTime
}

// DeliveryTime returns the client supplied delivery time in unix seconds.
func (o *Order) DeliveryTime() int64 {
	return o.deliveryTime
}

// Status returns the current delivery state.
func (o *Order) Status() Status {
	return o.status
}

// UpdatedAt returns the ledger time of the latest history entry, in UTC.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// UpdateStatus moves the order to next, appends a history entry and raises
// an OrderStatusUpdated event.
//
// Parameters:
//   - next: the new status, must be valid and differ from the current one
//   - note: free text stored with the entry, may be empty
//   - at: ledger time of the change
//
// Returns:
//   - HistoryEntry: the appended entry
//   - error: a PackageError wrapping ErrCannotUpdateWithTheSameStatus when
//     next equals the current status, or a validation error
//
// The entry time is clamped to the previous entry so history stays
// non-decreasing even when the clock steps back. Any status may follow any
// other status, including a return to Dispatched.
//
// Example:
//
//	entry, err := o.UpdateStatus(order.InTransit, "left the depot", clock.Now())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(entry.Status(), entry.UpdatedTime())
func (o *Order) UpdateStatus(next Status, note string, at time.Time) (HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	status, err := o.status.ChangeTo(next)
	if errors.Is(err, ErrCannotUpdateWithTheSameStatus) {
		return HistoryEntry{}, NewCannotUpdateWithTheSameStatusError(o.packageID)
	}
	if err != nil {
		return HistoryEntry{}, err
	}

	at = at.UTC()
	if at.Before(o.updatedAt) {
		at = o.updatedAt
	}

	entry, err := NewHistoryEntry(o.packageID, status, note, at)
	if err != nil {
		return HistoryEntry{}, err
	}
	event, err := NewEvent(OrderStatusUpdated, entry)
	if err != nil {
		return HistoryEntry{}, err
	}

	o.status = status
	o.updatedAt = at
	o.events = append(o.events, event)
	return entry, nil
}

// Events returns the changes raised since the last ClearEvents, oldest
// first. The returned slice is a copy.
func (o *Order) Events() []Event {
	events := make([]Event, len(o.events))
	copy(events, o.events)
	return events
}

// ClearEvents is called once the events are safely in the outbox.
func (o *Order) ClearEvents() {
	o.events = nil
}

// raise appends an event for a history entry that is not produced by
// UpdateStatus, i.e. the creation entry.
func (o *Order) raise(kind EventKind, status Status, note string, at time.Time) error {
	entry, err := NewHistoryEntry(o.packageID, status, note, at)
	if err != nil {
		return err
	}
	event, err := NewEvent(kind, entry)
	if err != nil {
		return err
	}
	o.events = append(o.events, event)
	return nil
}

func (o *Order) setPackageID(id kernel.PackageID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.packageID = id
	return nil
}

// setTimes rejects negative times. Delivery before dispatch is allowed since
// both are opaque client values.
func (o *Order) setTimes(dispatchTime, deliveryTime int64) error {
	var errList []error
	if dispatchTime < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("dispatchTime", dispatchTime, 0, "max int64"))
	}
	if deliveryTime < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("deliveryTime", deliveryTime, 0, "max int64"))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	o.dispatchTime = dispatchTime
	o.deliveryTime = deliveryTime
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
