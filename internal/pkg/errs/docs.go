// Package errs provides the typed errors shared by the ledger packages.
//
// Every error kind follows the same shape:
//   - a sentinel variable (e.g. ErrValueIsRequired) to match with errors.Is
//   - a struct carrying the details, matched with errors.As
//   - New... and New...WithCause constructors
//   - Unwrap returning the sentinel
//
// Transport adapters map sentinels to wire codes, so callers never have to
// parse messages.
package errs
