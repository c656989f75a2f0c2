package commands

import (
	"errors"

	"ordertracker/internal/pkg/errs"
	"ordertracker/internal/pkg/guard"
)

// ErrPublishLedgerEventsCommandIsNotConstructed is returned by Validate for a zero-value command.
var ErrPublishLedgerEventsCommandIsNotConstructed = errors.New(
	"PublishLedgerEventsCommand must be created via NewPublishLedgerEventsCommand constructor",
)

// MaxPublishBatchSize caps how many events one relay run reads.
const MaxPublishBatchSize = 1000

// PublishLedgerEventsCommand asks for one batch of pending events to be relayed.
type PublishLedgerEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewPublishLedgerEventsCommand accepts a batch size between 1 and MaxPublishBatchSize.
func NewPublishLedgerEventsCommand(batchSize int) (PublishLedgerEventsCommand, error) {
	if batchSize < 1 || batchSize > MaxPublishBatchSize {
		return PublishLedgerEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxPublishBatchSize)
	}

	return PublishLedgerEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishLedgerEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishLedgerEventsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of events to relay.
func (c PublishLedgerEventsCommand) BatchSize() int {
	return c.batchSize
}
