package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat sorts lexically in creation order
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	LogFileNamePattern    = "session_%s.log"
	LogFileExtension      = ".log"
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting challenge service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Database
// =============================================================================

const (
	// DatabaseStartupTimeout bounds pool creation and migrations at startup
	DatabaseStartupTimeout = 30 * time.Second

	LogMsgDatabaseConnected  = "Database connected"
	LogMsgMigrationsSkipped  = "Migrations disabled, skipping"
	ErrMsgFailedConnectDB    = "failed to connect to database"
	ErrMsgFailedRunMigration = "failed to run migrations"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLogSubscribed         = "Event log subscribed"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLog    = "failed to subscribe event log"
)

// =============================================================================
// Background Workers
// =============================================================================

const (
	JobSettlementReconcile = "settlement_reconcile"
	JobEventLogCleanup     = "event_log_cleanup"

	EventCleanupInterval = 24 * time.Hour
)

const (
	LogMsgReconcilerStarted    = "Settlement reconciler started"
	LogMsgReconcilerDisabled   = "Settlement reconciler disabled"
	LogMsgEventCleanupStarted  = "Event log cleanup scheduled"
	LogMsgEventCleanupDisabled = "Event log cleanup disabled"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	// ShutdownTimeout bounds the graceful shutdown sequence
	ShutdownTimeout = 15 * time.Second

	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgStoppingWorkers      = "Stopping background workers..."
	LogMsgClosingDatabase      = "Closing database pool..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
)
