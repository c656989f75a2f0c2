package kernel

import (
	"math"
	"strconv"
	"strings"

	"ordertracker/internal/pkg/errs"
)

// PackageID is the caller assigned identifier of a shipped package.
// Zero is reserved and never identifies an order. Values above math.MaxInt64
// are rejected because SQL drivers cannot bind them.
type PackageID uint64

// NewPackageID validates value. See Validate for the accepted range.
func NewPackageID(value uint64) (PackageID, error) {
	id := PackageID(value)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParsePackageID accepts the decimal form used in URLs and scripts.
//
// Example:
//
//	id, err := ParsePackageID(c.Param("packageId"))
//	if err != nil {
//	    return err // ValueIsInvalid, ValueIsRequired or ValueIsOutOfRange
//	}
func ParsePackageID(s string) (PackageID, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("packageId", err)
	}
	return NewPackageID(value)
}

// Validate returns errs.ErrValueIsRequired for zero and
// errs.ErrValueIsOutOfRange above math.MaxInt64.
func (id PackageID) Validate() error {
	if id == 0 {
		return errs.NewValueIsRequiredError("packageId")
	}
	if uint64(id) > math.MaxInt64 {
		return errs.NewValueIsOutOfRangeError("packageId", uint64(id), 1, uint64(math.MaxInt64))
	}
	return nil
}

// Uint64 returns the raw value for storage and the wire.
func (id PackageID) Uint64() uint64 {
	return uint64(id)
}

func (id PackageID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
