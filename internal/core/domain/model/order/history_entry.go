package order

import (
	"errors"
	"time"

	"ordertracker/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned by Validate for a zero-value entry.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry")

// HistoryEntry is one immutable line of an order's audit trail. An order's
// history is the list of its entries ordered by UpdatedTime, and the status
// of the last entry always equals the order's current status.
type HistoryEntry struct {
	// packageID is the order the entry belongs to
	packageID kernel.PackageID

	// status is the status the order moved to
	status Status

	// note is free text supplied with the update, empty on creation
	note string

	// updatedTime is ledger time in UTC, not a client value
	updatedTime time.Time

	isConstructed bool
}

// NewHistoryEntry creates an entry. Entries are normally produced by
// NewOrder and Order.UpdateStatus. Repositories call it when mapping rows.
//
// Parameters:
//   - id: package id of the order
//   - status: status the order moved to
//   - note: free text, may be empty
//   - updatedTime: ledger time, stored in UTC
//
// Returns:
//   - HistoryEntry: the entry
//   - error: joined validation errors of id and status
func NewHistoryEntry(id kernel.PackageID, status Status, note string, updatedTime time.Time) (HistoryEntry, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		packageID:     id,
		status:        status,
		note:          note,
		updatedTime:   updatedTime.UTC(),
		isConstructed: true,
	}, nil
}

// PackageID returns the order the entry belongs to.
func (h HistoryEntry) PackageID() kernel.PackageID {
	return h.packageID
}

// Status returns the status the order moved to.
func (h HistoryEntry) Status() Status {
	return h.status
}

func (h HistoryEntry) Note() string {
	return h.note
}

// UpdatedTime returns the ledger time of the change in UTC.
func (h HistoryEntry) UpdatedTime() time.Time {
	return h.updatedTime
}

// Validate rejects the zero value.
func (h HistoryEntry) Validate() error {
	if !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}
