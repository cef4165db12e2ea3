package bootstrap

// Log messages used during startup and shutdown
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgServerStopped        = "Server stopped"

	LogMsgStorageMemory   = "Using in-memory storage"
	LogMsgStoragePostgres = "Using PostgreSQL storage"

	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgAdminNotifierRegistered    = "Admin notifier registered"
)

// Service names for shutdown logging
const (
	ServiceNameSpin = "spin"
)
