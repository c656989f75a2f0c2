package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"ordertracker/internal/adapters/out/publisher"
	"ordertracker/internal/adapters/out/storage"
	"ordertracker/internal/jobs"
	"ordertracker/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrLedgerOwnerIsRequired is returned by Validate when LEDGER_OWNER is blank.
	ErrLedgerOwnerIsRequired = errors.New("LEDGER_OWNER is required")

	// ErrUnsupportedDBDriver wraps the offending DB_DRIVER value.
	ErrUnsupportedDBDriver = errors.New("unsupported DB_DRIVER")
)

// Config holds every runtime setting. Each field maps to the upper-cased
// environment variable of its mapstructure tag, e.g. DBDriver reads DB_DRIVER.
//
// Example .env:
//
//	HTTP_PORT=8080
//	DB_DRIVER=postgres
//	DB_HOST=localhost
//	DB_NAME=ordertracker
//	LEDGER_OWNER=carrier-admin
//	REDIS_ENABLED=true
//	REDIS_ADDR=localhost:6379
type Config struct {
	// HTTPPort is the port the API listens on, default 8080.
	HTTPPort string `mapstructure:"http_port"`

	// DBDriver is "sqlite" (default) or "postgres". "sqlite3" and
	// "postgresql" are accepted as aliases.
	DBDriver string `mapstructure:"db_driver"`

	// DBDSN overrides the connection string built from the DB_* parts below.
	DBDSN string `mapstructure:"db_dsn"`

	// Postgres connection parts, used when DBDSN is empty.
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSslMode  string `mapstructure:"db_sslmode"`

	// LedgerOwner is the identity that deploys the ledger and the only one
	// allowed to update statuses. Required.
	LedgerOwner string `mapstructure:"ledger_owner"`

	// LogMode "debug" logs to stdout in console format. Anything else logs
	// JSON to a rotated file configured by the remaining LOG_* settings.
	LogMode       string `mapstructure:"log_mode"`
	LogDir        string `mapstructure:"log_dir"`
	LogFilename   string `mapstructure:"log_filename"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
	LogCompress   bool   `mapstructure:"log_compress"`

	// RedisEnabled switches event publishing from the log to a Redis stream.
	RedisEnabled  bool   `mapstructure:"redis_enabled"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisStream   string `mapstructure:"redis_stream"`

	// OutboxRelaySchedule is a cron spec with seconds, default every second.
	OutboxRelaySchedule string `mapstructure:"outbox_relay_schedule"`

	// OutboxBatchSize caps the events published per relay run.
	OutboxBatchSize int `mapstructure:"outbox_batch_size"`
}

// LoadConfig reads envFile into the process environment when it exists and
// then resolves every setting from the environment over the defaults.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal. Viper only looks up environment variables for known keys.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "8080")

	v.SetDefault("db_driver", storage.DriverSQLite)
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "ordertracker")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("ledger_owner", "")

	v.SetDefault("log_mode", logger.ModeDebug)
	v.SetDefault("log_dir", "")
	v.SetDefault("log_filename", "ordertracker.log")
	v.SetDefault("log_max_size_mb", 100)
	v.SetDefault("log_max_backups", 7)
	v.SetDefault("log_max_age_days", 30)
	v.SetDefault("log_compress", true)

	v.SetDefault("redis_enabled", false)
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_stream", publisher.DefaultStream)

	v.SetDefault("outbox_relay_schedule", jobs.DefaultRelaySchedule)
	v.SetDefault("outbox_batch_size", 100)
}

// Validate reports a missing LEDGER_OWNER and a DB_DRIVER other than
// postgres or sqlite.
func (c Config) Validate() error {
	var errList []error
	if strings.TrimSpace(c.LedgerOwner) == "" {
		errList = append(errList, ErrLedgerOwnerIsRequired)
	}
	if driver := storage.NormalizeDriver(c.DBDriver); driver != storage.DriverSQLite && driver != storage.DriverPostgres {
		errList = append(errList, fmt.Errorf("%w: %s", ErrUnsupportedDBDriver, c.DBDriver))
	}
	return errors.Join(errList...)
}

// DSN returns DB_DSN when set. Otherwise it is built from the DB_* parts for
// postgres, or defaults to a file next to the binary for sqlite.
func (c Config) DSN() string {
	if dsn := strings.TrimSpace(c.DBDSN); dsn != "" {
		return dsn
	}
	if storage.NormalizeDriver(c.DBDriver) == storage.DriverSQLite {
		return "ordertracker.db"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return dsn.String()
}

// LoggerOptions maps the LOG_* settings.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.LogDir,
		Filename:   c.LogFilename,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

// RedisOptions maps the REDIS_* settings.
func (c Config) RedisOptions() publisher.RedisOptions {
	return publisher.RedisOptions{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		Stream:   c.RedisStream,
	}
}
