package kernel

import "time"

// Clock supplies the time the ledger writes into history entries and the
// ledger deployment. Handlers take a Clock instead of calling time.Now so
// tests can control time.
type Clock interface {
	// Now returns the current ledger time.
	Now() time.Time
}

// SystemClock reads the wall clock in UTC, truncated to microseconds so values
// survive a round trip through every supported store unchanged.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ClockFunc adapts a function to Clock. Tests use it to pin or step time:
//
//	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
//	clock := kernel.ClockFunc(func() time.Time { return now })
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
