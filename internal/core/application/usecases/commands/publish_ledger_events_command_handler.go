package commands

import (
	"context"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/ports"
)

// PublishLedgerEventsCommandHandler relays committed events from the outbox to
// an EventPublisher. It is driven by jobs.OutboxRelayJob.
//
// Example:
//
//	handler := NewPublishLedgerEventsCommandHandler(uowFactory, publisher, kernel.SystemClock{})
//	cmd, _ := NewPublishLedgerEventsCommand(100)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    logger.Error("relay failed", zap.Error(err)) // retried next run
//	}
type PublishLedgerEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

// NewPublishLedgerEventsCommandHandler creates a relay handler. The clock
// stamps the published_at column.
func NewPublishLedgerEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) PublishLedgerEventsCommandHandler {
	return PublishLedgerEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle publishes one batch of pending events in creation order. It stops at
// the first publish failure, marks what was delivered before it and returns
// the failure; the rest is retried on the next run.
func (h *PublishLedgerEventsCommandHandler) Handle(ctx context.Context, cmd PublishLedgerEventsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	events, err := outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	published := make([]kernel.UUID, 0, len(events))
	var publishErr error
	for _, event := range events {
		if publishErr = h.publisher.Publish(ctx, event); publishErr != nil {
			break
		}
		published = append(published, event.ID())
	}

	if len(published) == 0 {
		return publishErr
	}

	if err = outbox.MarkPublished(ctx, h.clock.Now(), published...); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}
	return publishErr
}
