package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ordertracker/internal/adapters/out/storage/ledgerrepo"
	"ordertracker/internal/adapters/out/storage/orderrepo"
	"ordertracker/internal/adapters/out/storage/outboxrepo"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const slowQueryThreshold = 200 * time.Millisecond

// PoolOptions tunes the database/sql pool behind GORM. Zero values keep the
// driver defaults.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to the ledger store. SQLite allows a single open connection
// so that writers queue instead of failing with SQLITE_BUSY.
//
// GORM's own logging goes to logger at warn level: failed statements and
// queries slower than 200ms. Lookups that find nothing are not logged since
// repositories turn them into domain errors. A nil logger discards it.
//
// Example:
//
//	db, err := storage.Open(storage.DriverPostgres, cfg.DSN(), storage.PoolOptions{MaxOpenConns: 10}, log)
//	if err != nil {
//	    return err
//	}
//	if err = storage.AutoMigrate(db); err != nil {
//	    return err
//	}
func Open(driver, dsn string, pool PoolOptions, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch NormalizeDriver(driver) {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
		pool.MaxOpenConns = 1
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	applyPool(sqlDB, pool)
	return db, nil
}

// NormalizeDriver maps accepted spellings to a driver constant, or returns
// the input lower-cased when it is unknown.
func NormalizeDriver(driver string) string {
	switch normalized := strings.ToLower(strings.TrimSpace(driver)); normalized {
	case "", "sqlite", "sqlite3":
		return DriverSQLite
	case "postgres", "postgresql", "pg":
		return DriverPostgres
	default:
		return normalized
	}
}

// AutoMigrate creates or updates every ledger table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ledgerrepo.LedgerDTO{},
		&orderrepo.OrderIDDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&outboxrepo.EventDTO{},
	)
}

func applyPool(sqlDB *sql.DB, pool PoolOptions) {
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
}

func newGormLogger(logger *zap.Logger) gormlogger.Interface {
	if logger == nil {
		logger = zap.NewNop()
	}
	writer, err := zap.NewStdLogAt(logger.With(zap.String("component", "gorm")), zap.WarnLevel)
	if err != nil {
		return gormlogger.Discard
	}

	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
