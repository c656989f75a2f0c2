// Package order provides the Order aggregate of the ledger.
//
// An order is created once in the Dispatched status and afterwards only its
// status changes. Every accepted change produces a HistoryEntry and an Event:
//
//	NewOrder ──> Dispatched ──UpdateStatus──> any other status ──> ...
//
// No ordering among statuses is enforced and there is no terminal status; the
// only rule is that an update must actually change the status.
package order
