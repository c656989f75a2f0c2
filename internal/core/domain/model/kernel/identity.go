package kernel

import (
	"strings"

	"ordertracker/internal/pkg/errs"
)

// Identity is the account a caller acts as. The transport asserts it and the
// ledger only compares it against the owner.
//
// The zero value is the anonymous caller. It never equals any identity,
// itself included, so an anonymous caller can never pass an owner check.
//
// Example:
//
//	owner, _ := kernel.NewIdentity("carrier-admin")
//	caller, _ := kernel.NewIdentity(r.Header.Get("X-Caller-Identity"))
//	if !owner.IsEqual(caller) {
//	    return errs.NewUnauthorizedError(caller.String())
//	}
type Identity struct {
	// value is trimmed and empty only for the anonymous caller
	value string
}

// NewIdentity trims value and rejects an empty result.
func NewIdentity(value string) (Identity, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Identity{}, errs.NewValueIsRequiredError("identity")
	}
	return Identity{value: value}, nil
}

// IsEqual is false whenever either side is the anonymous zero value.
func (i Identity) IsEqual(other Identity) bool {
	return i.value != "" && i.value == other.value
}

// IsAnonymous reports the zero value.
func (i Identity) IsAnonymous() bool {
	return i.value == ""
}

func (i Identity) String() string {
	return i.value
}

func (i Identity) Validate() error {
	if i.value == "" {
		return errs.NewValueIsRequiredError("identity")
	}
	return nil
}
