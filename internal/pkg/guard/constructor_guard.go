// Package guard lets value types detect that they were built through their
// constructor rather than declared as zero values.
package guard

import "errors"

var ErrDefaultConstructorGuard = errors.New("object must be created through its constructor")

// ConstructorGuard is embedded into types whose zero value is not usable.
// Only NewConstructorGuard produces a guard that validates.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard that validates.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns err, or ErrDefaultConstructorGuard when err is nil,
// if the guard is a zero value.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
