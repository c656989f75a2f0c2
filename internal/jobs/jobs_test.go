package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordertracker/internal/adapters/out/publisher"
	"ordertracker/internal/adapters/out/storage"
	"ordertracker/internal/adapters/out/storage/storagetest"
	"ordertracker/internal/core/application/usecases/commands"
	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type outboxUoWFactory func() commands.OutboxUoW

func (f outboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type fakeJob struct {
	name     string
	startErr error
	calls    *[]string
}

func (j *fakeJob) Start() error {
	*j.calls = append(*j.calls, "start "+j.name)
	return j.startErr
}

func (j *fakeJob) Stop() {
	*j.calls = append(*j.calls, "stop "+j.name)
}

func TestJobManager_StartAllAndStopAll(t *testing.T) {
	var calls []string
	jm := jobs.NewJobManager(&fakeJob{name: "a", calls: &calls}, &fakeJob{name: "b", calls: &calls})

	require.NoError(t, jm.StartAll())
	jm.StopAll()
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, calls)
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	jm := jobs.NewJobManager(
		&fakeJob{name: "a", calls: &calls},
		&fakeJob{name: "b", calls: &calls, startErr: boom},
		&fakeJob{name: "c", calls: &calls},
	)

	err := jm.StartAll()

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start a", "start b", "stop a"}, calls)
}

func newRelay(t *testing.T, schedule string) (*jobs.OutboxRelayJob, *observer.ObservedLogs, *storage.GormUnitOfWorkFactory) {
	t.Helper()
	db := storagetest.NewSQLite(t)
	factory := storage.NewGormUnitOfWorkFactory(db)
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := commands.NewPublishLedgerEventsCommandHandler(
		outboxUoWFactory(func() commands.OutboxUoW { return factory.Create() }),
		publisher.NewLogPublisher(logger),
		kernel.SystemClock{},
	)
	job, err := jobs.NewOutboxRelayJob(handler, schedule, 10, logger)
	require.NoError(t, err)
	return job, logs, factory
}

func seedOrder(t *testing.T, factory *storage.GormUnitOfWorkFactory, id kernel.PackageID) {
	t.Helper()
	ctx := context.Background()
	o, err := order.NewOrder(id, "a", "b", 1, 2, order.Dispatched, time.Now().UTC())
	require.NoError(t, err)
	_, err = o.UpdateStatus(order.InTransit, "on the way", time.Now().UTC())
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Commit(ctx))
}

func TestOutboxRelayJob_RunOnce(t *testing.T) {
	job, logs, factory := newRelay(t, "")
	seedOrder(t, factory, 100)

	require.NoError(t, job.RunOnce(context.Background()))
	require.NoError(t, job.RunOnce(context.Background()))

	published := logs.FilterMessage("ledger event").All()
	require.Len(t, published, 2)
	assert.Equal(t, "OrderCreated", published[0].ContextMap()["kind"])
	assert.Equal(t, "OrderStatusUpdated", published[1].ContextMap()["kind"])
}

func TestOutboxRelayJob_StartAndStop(t *testing.T) {
	job, logs, factory := newRelay(t, "@every 1s")
	seedOrder(t, factory, 100)

	require.NoError(t, job.Start())
	require.Eventually(t, func() bool {
		return logs.FilterMessage("ledger event").Len() == 2
	}, 5*time.Second, 50*time.Millisecond)
	job.Stop()

	assert.Equal(t, 1, logs.FilterMessage("Outbox relay job stopped").Len())
}

func TestOutboxRelayJob_InvalidSchedule(t *testing.T) {
	job, _, _ := newRelay(t, "not a schedule")

	require.Error(t, job.Start())
}

func TestNewOutboxRelayJob_InvalidBatchSize(t *testing.T) {
	_, err := jobs.NewOutboxRelayJob(commands.PublishLedgerEventsCommandHandler{}, "", 0, zap.NewNop())

	require.Error(t, err)
}
