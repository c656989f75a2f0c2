package ports

import (
	"context"
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
)

// OutboxRepository stores ledger events next to the state change that raised
// them until a relay publishes them.
type OutboxRepository interface {
	// Add stores events in order. It must run in the transaction that saved
	// the aggregate raising them.
	Add(ctx context.Context, events ...order.Event) error

	// GetUnpublished returns up to limit events, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]order.Event, error)

	// MarkPublished records that the events were handed to the publisher.
	// Marked events are never returned by GetUnpublished again.
	MarkPublished(ctx context.Context, publishedAt time.Time, ids ...kernel.UUID) error
}
