package publisher

import (
	"context"

	"ordertracker/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// LogPublisher writes each event as one info entry.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher tags entries with component log_publisher.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With(zap.String("component", "log_publisher"))}
}

// Publish never fails.
func (p *LogPublisher) Publish(_ context.Context, event order.Event) error {
	entry := event.Entry()
	p.logger.Info("ledger event",
		zap.String("event_id", event.ID().String()),
		zap.String("kind", string(event.Kind())),
		zap.Uint64("package_id", entry.PackageID().Uint64()),
		zap.Stringer("status", entry.Status()),
		zap.String("note", entry.Note()),
		zap.Time("updated_time", entry.UpdatedTime()),
	)
	return nil
}
