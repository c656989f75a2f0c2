package jobs

import (
	"context"
	"fmt"

	"ordertracker/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRelaySchedule runs the relay every second (cron with seconds).
const DefaultRelaySchedule = "* * * * * *"

// OutboxRelayJob drains the outbox on a cron schedule. Overlapping ticks are
// skipped while a run is still publishing.
//
// Example:
//
//	job, err := NewOutboxRelayJob(handler, "*/5 * * * * *", 100, logger)
//	if err != nil {
//	    return err
//	}
//	if err := job.Start(); err != nil {
//	    return err
//	}
//	defer job.Stop()
type OutboxRelayJob struct {
	handler  commands.PublishLedgerEventsCommandHandler
	cmd      commands.PublishLedgerEventsCommand
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewOutboxRelayJob creates a job publishing up to batchSize events per tick.
// An empty schedule means every second.
func NewOutboxRelayJob(
	handler commands.PublishLedgerEventsCommandHandler,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewPublishLedgerEventsCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}

	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", "outbox_relay_job")),
	}, nil
}

// RunOnce relays a single batch.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) error {
	return j.handler.Handle(ctx, j.cmd)
}

// Start registers the schedule and starts the cron. Relay errors are logged, not returned.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("Outbox relay failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}
