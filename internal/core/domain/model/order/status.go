package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ordertracker/internal/pkg/errs"
)

// Status is the delivery state of an order. The numeric codes are part of the
// wire contract and must never be renumbered.
//
// Statuses are stored as their code and rendered as their name:
//
//	| Code | Name       |
//	|------|------------|
//	| 0    | Dispatched |
//	| 1    | InTransit  |
//	| 2    | Delivered  |
//
// Example:
//
//	status, err := order.ParseStatus("in_transit")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(status, int(status)) // InTransit 1
type Status int

const (
	// Dispatched is the only status an order can be created in.
	Dispatched Status = iota

	// InTransit means the package is on its way.
	InTransit

	// Delivered means the package reached the recipient. It is not terminal:
	// the owner may still move the order to another status.
	Delivered
)

var statusNames = map[Status]string{
	Dispatched: "Dispatched",
	InTransit:  "InTransit",
	Delivered:  "Delivered",
}

// statusAliases maps lower-cased spellings to statuses, including the
// underscored form used by operator scripts.
var statusAliases = map[string]Status{
	"dispatched": Dispatched,
	"intransit":  InTransit,
	"in_transit": InTransit,
	"delivered":  Delivered,
}

// ParseStatus accepts a status name in any case, the underscored form
// "in_transit", or the numeric code.
//
// Returns:
//   - errs.ErrValueIsInvalid for unknown names
//   - errs.ErrValueIsOutOfRange for unknown codes
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if status, ok := statusAliases[strings.ToLower(s)]; ok {
		return status, nil
	}

	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown status %q", s))
	}
	status := Status(code)
	if err := status.Validate(); err != nil {
		return 0, err
	}
	return status, nil
}

// Validate reports codes outside Dispatched..Delivered as
// errs.ErrValueIsOutOfRange.
func (s Status) Validate() error {
	if s < Dispatched || s > Delivered {
		return errs.NewValueIsOutOfRangeError("status", int(s), int(Dispatched), int(Delivered))
	}
	return nil
}

// String returns the status name, or "Unknown" for an invalid code.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ChangeTo returns next when it is a valid status different from s.
//
// Returns:
//   - next and nil on success
//   - s and ErrCannotUpdateWithTheSameStatus when next equals s
//   - s and a validation error when next is not a valid status
//
// Example:
//
//	next, err := order.Delivered.ChangeTo(order.Dispatched) // allowed
//	_, err = order.InTransit.ChangeTo(order.InTransit)      // ErrCannotUpdateWithTheSameStatus
func (s Status) ChangeTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return s, err
	}
	if next == s {
		return s, ErrCannotUpdateWithTheSameStatus
	}
	return next, nil
}

// MarshalJSON writes the status name, e.g. "InTransit".
func (s Status) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either a status name or a numeric code.
func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("status", err)
		}
	} else {
		raw = string(data)
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}
