package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"ordertracker/internal/adapters/out/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the test and restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "HTTP_PORT", "DB_DRIVER", "DB_DSN", "REDIS_ENABLED", "OUTBOX_BATCH_SIZE", "LOG_MODE")
	t.Setenv("LEDGER_OWNER", "0xowner")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, storage.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "0xowner", cfg.LedgerOwner)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, "* * * * * *", cfg.OutboxRelaySchedule)
	assert.Equal(t, "debug", cfg.LogMode)
	assert.Equal(t, "ordertracker.db", cfg.DSN())
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	unsetEnv(t, "HTTP_PORT", "DB_DRIVER", "LEDGER_OWNER", "REDIS_ENABLED", "REDIS_DB", "OUTBOX_BATCH_SIZE")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"HTTP_PORT=9090\nDB_DRIVER=postgres\nLEDGER_OWNER=0xfile\nREDIS_ENABLED=true\nREDIS_DB=3\nOUTBOX_BATCH_SIZE=25\n",
	), 0o600))
	t.Setenv("LEDGER_OWNER", "0xenv")

	cfg, err := LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "0xenv", cfg.LedgerOwner)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
}

func TestLoadConfig_RequiresOwner(t *testing.T) {
	unsetEnv(t, "LEDGER_OWNER", "DB_DRIVER")

	_, err := LoadConfig("")

	require.ErrorIs(t, err, ErrLedgerOwnerIsRequired)
}

func TestConfig_Validate(t *testing.T) {
	err := Config{LedgerOwner: " ", DBDriver: "mysql"}.Validate()

	require.ErrorIs(t, err, ErrLedgerOwnerIsRequired)
	require.ErrorIs(t, err, ErrUnsupportedDBDriver)
	assert.NoError(t, Config{LedgerOwner: "0x1", DBDriver: "pg"}.Validate())
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		DBDriver:   "postgres",
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "tracker",
		DBPassword: "p@ss",
		DBName:     "ledger",
		DBSslMode:  "disable",
	}
	assert.Equal(t, "postgres://tracker:p%40ss@db:5432/ledger?sslmode=disable", cfg.DSN())

	cfg.DBDSN = "host=db user=x"
	assert.Equal(t, "host=db user=x", cfg.DSN())
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{
		LogDir:        "/var/log/ot",
		LogFilename:   "ot.log",
		LogMaxSizeMB:  5,
		LogMaxBackups: 2,
		LogMaxAgeDays: 3,
		LogCompress:   true,
		RedisAddr:     "redis:6379",
		RedisDB:       1,
		RedisStream:   "events",
	}

	opts := cfg.LoggerOptions()
	assert.Equal(t, "/var/log/ot", opts.Dir)
	assert.Equal(t, 5, opts.MaxSizeMB)
	assert.True(t, opts.Compress)

	redisOpts := cfg.RedisOptions()
	assert.Equal(t, "redis:6379", redisOpts.Addr)
	assert.Equal(t, "events", redisOpts.Stream)
}
