package ports

import (
	"context"

	"ordertracker/internal/core/domain/model/order"
)

// EventPublisher delivers ledger events to subscribers outside the service.
// Delivery is at least once; consumers deduplicate by event id.
type EventPublisher interface {
	// Publish delivers one event. An error leaves the event in the outbox
	// for the next relay run.
	Publish(ctx context.Context, event order.Event) error
}
