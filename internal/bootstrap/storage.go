package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dsolodov/foodwheel/internal/config"
	"github.com/dsolodov/foodwheel/internal/database"
	"github.com/dsolodov/foodwheel/internal/storage"
)

const (
	dbMaxConns    = 10
	dbMaxIdleTime = 5 * time.Minute
	dbMaxLifetime = time.Hour
)

// InitializeStorage selects the key-value store for this deployment.
// With DB_HOST set it migrates and connects to PostgreSQL; otherwise game
// state lives in memory and vanishes on restart.
func InitializeStorage(cfg *config.Config) (storage.Store, func(), error) {
	if !cfg.UseDatabase() {
		slog.Info(LogMsgStorageMemory)
		return storage.NewMemoryStore(), func() {}, nil
	}

	connString := cfg.GetDBConnString()

	if err := database.Migrate(connString); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.NewPool(connString, dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info(LogMsgStoragePostgres, "host", cfg.DBHost, "database", cfg.DBName)
	return storage.NewPostgresStore(pool), pool.Close, nil
}
