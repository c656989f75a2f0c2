package order

import (
	"errors"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/pkg/errs"
)

// EventKind tells consumers which mutation produced an event.
type EventKind string

const (
	// OrderCreated is raised once per order, by NewOrder.
	OrderCreated EventKind = "OrderCreated"

	// OrderStatusUpdated is raised by every accepted UpdateStatus.
	OrderStatusUpdated EventKind = "OrderStatusUpdated"
)

// Validate accepts OrderCreated and OrderStatusUpdated.
func (k EventKind) Validate() error {
	switch k {
	case OrderCreated, OrderStatusUpdated:
		return nil
	default:
		return errs.NewValueIsInvalidError("event kind")
	}
}

// Event announces a committed ledger mutation. Its entry is the history line
// the mutation appended.
//
// Events are collected on the aggregate, written to the outbox by the unit of
// work on commit, and later handed to an EventPublisher by the relay job.
// Delivery is at least once, so consumers dedupe on ID.
type Event struct {
	// id is unique per event and survives the outbox round trip
	id kernel.UUID

	kind  EventKind
	entry HistoryEntry
}

// NewEvent assigns a fresh id.
func NewEvent(kind EventKind, entry HistoryEntry) (Event, error) {
	return RestoreEvent(kernel.NewUUID(), kind, entry)
}

// RestoreEvent rebuilds an event read back from the outbox. The id is kept so
// consumers see the same id on every delivery.
func RestoreEvent(id kernel.UUID, kind EventKind, entry HistoryEntry) (Event, error) {
	if err := errors.Join(id.Validate(), kind.Validate(), entry.Validate()); err != nil {
		return Event{}, err
	}
	return Event{id: id, kind: kind, entry: entry}, nil
}

// ID returns the event id consumers dedupe on.
func (e Event) ID() kernel.UUID {
	return e.id
}

func (e Event) Kind() EventKind {
	return e.kind
}

// Entry returns the history line the event announces.
func (e Event) Entry() HistoryEntry {
	return e.entry
}
