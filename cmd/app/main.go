// Command app runs the order ledger: it loads configuration from the
// environment and an optional .env file, opens the store, deploys the ledger
// for LEDGER_OWNER, starts the outbox relay and serves the HTTP API until
// SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordertracker/cmd"
	apihttp "ordertracker/internal/adapters/in/http"
	"ordertracker/internal/adapters/out/publisher"
	"ordertracker/internal/adapters/out/storage"
	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/ports"
	"ordertracker/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ordertracker: %v\n", err)
		os.Exit(1)
	}
}

// run returns the first startup error. Deferred cleanup runs in reverse:
// jobs stop before the publisher and the store are closed.
func run() error {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}

	log := logger.New(configs.LogMode, configs.LoggerOptions())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(configs, log)
	if err != nil {
		return err
	}
	defer closeStore(db, log)

	eventPublisher, closePublisher, err := newPublisher(ctx, configs, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	app := cmd.NewCompositionRoot(configs, db, eventPublisher, kernel.SystemClock{}, log)
	if err = app.DeployLedger(ctx); err != nil {
		return fmt.Errorf("deploy ledger: %w", err)
	}
	log.Info("Ledger deployed", zap.String("owner", configs.LedgerOwner))

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, &app, configs, log)
}

// openStore connects to DB_DRIVER and migrates the schema.
func openStore(configs cmd.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := storage.Open(configs.DBDriver, configs.DSN(), storage.PoolOptions{}, log)
	if err != nil {
		return nil, err
	}
	if err = storage.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func closeStore(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.Warn("Close database", zap.Error(err))
	}
}

// newPublisher returns the Redis stream publisher when REDIS_ENABLED is set,
// otherwise a publisher that only logs. The returned func closes the client.
func newPublisher(ctx context.Context, configs cmd.Config, log *zap.Logger) (ports.EventPublisher, func(), error) {
	if !configs.RedisEnabled {
		return publisher.NewLogPublisher(log), func() {}, nil
	}

	opts := configs.RedisOptions()
	client, err := publisher.NewRedisClient(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	p, err := publisher.NewRedisStreamPublisher(client, opts.Stream)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	log.Info("Publishing ledger events to redis", zap.String("stream", p.Stream()))
	return p, func() { _ = client.Close() }, nil
}

// startWebServer serves until ctx is cancelled and then shuts down, giving
// in-flight requests shutdownTimeout to finish.
func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, log *zap.Logger) error {
	e := apihttp.NewEcho(log, logger.IsDebug(configs.LogMode))
	app.CreateHTTPServer().RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("port", configs.HTTPPort))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("Shutting down")
	return e.Shutdown(shutdownCtx)
}
