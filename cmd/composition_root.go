// Package cmd wires the application: configuration, the composition root and
// the use case handlers it builds. The binary lives in cmd/app.
package cmd

import (
	"context"

	apihttp "ordertracker/internal/adapters/in/http"
	"ordertracker/internal/adapters/out/storage"
	"ordertracker/internal/core/application/usecases/commands"
	"ordertracker/internal/core/application/usecases/queries"
	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/ports"
	"ordertracker/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot builds every handler, the HTTP server and the background
// jobs from one database, publisher, clock and logger.
//
// Handlers are created on demand and share the root's Unit of Work factory.
// Each command still gets its own Unit of Work per call.
//
// Example:
//
//	root := cmd.NewCompositionRoot(cfg, db, publisher, kernel.SystemClock{}, log)
//	if err := root.DeployLedger(ctx); err != nil {
//	    return err
//	}
//
//	manager, err := root.CreateJobManager()
//	if err != nil {
//	    return err
//	}
//	if err := manager.StartAll(); err != nil {
//	    return err
//	}
//	defer manager.StopAll()
//
//	root.CreateHTTPServer().RegisterRoutes(e)
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *storage.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewCompositionRoot creates the root. It does not touch the database.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: storage.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// CreateDeployLedgerCommandHandler builds the handler used by DeployLedger.
func (c *CompositionRoot) CreateDeployLedgerCommandHandler() commands.DeployLedgerCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeployLedgerCommandHandler(f, c.clock)
}

// DeployLedger records LEDGER_OWNER as the ledger owner. It is a no-op when
// the ledger is already deployed by the same owner.
func (c *CompositionRoot) DeployLedger(ctx context.Context) error {
	owner, err := kernel.NewIdentity(c.cfg.LedgerOwner)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeployLedgerCommand(owner)
	if err != nil {
		return err
	}
	handler := c.CreateDeployLedgerCommandHandler()
	return handler.Handle(ctx, cmd)
}

// CreateCreateOrderCommandHandler builds the handler behind POST /orders.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.clock)
}

// CreateUpdateOrderStatusCommandHandler builds the handler behind PUT /orders/{id}/status.
func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.clock)
}

// CreatePublishLedgerEventsCommandHandler builds the handler the outbox relay runs.
func (c *CompositionRoot) CreatePublishLedgerEventsCommandHandler() commands.PublishLedgerEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishLedgerEventsCommandHandler(f, c.publisher, c.clock)
}

// CreateGetOrderQueryHandler reads straight from the root database.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetListOfOrdersQueryHandler() queries.GetListOfOrdersQueryHandler {
	return queries.NewGetListOfOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer returns the API handlers. Mount them with Server.RegisterRoutes.
func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	return apihttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetListOfOrdersQueryHandler(),
		c.logger,
	)
}

// CreateOutboxRelayJob schedules the relay with OUTBOX_RELAY_SCHEDULE. An
// invalid cron spec is returned as an error.
func (c *CompositionRoot) CreateOutboxRelayJob() (*jobs.OutboxRelayJob, error) {
	return jobs.NewOutboxRelayJob(
		c.CreatePublishLedgerEventsCommandHandler(),
		c.cfg.OutboxRelaySchedule,
		c.cfg.OutboxBatchSize,
		c.logger,
	)
}

// CreateJobManager returns a manager holding every background job.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relay, err := c.CreateOutboxRelayJob()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(relay), nil
}

// FuncLedgerUoWFactory adapts a function to commands.LedgerUoWFactory.
type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// FuncOutboxUoWFactory adapts a function to commands.OutboxUoWFactory.
type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
