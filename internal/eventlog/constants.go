package eventlog

// Log messages - service events
const (
	LogMsgFailedToLogEvent = "Failed to log event to database"
	LogMsgEventLogged      = "Event logged to database"
	LogMsgEventUndecodable = "Event payload has no challenge subject"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
	LogMsgCleanupJobSkipped   = "Event log cleanup skipped, retention disabled"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldChallengeID   = "challenge_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
	LogFieldCutoff        = "cutoff"
)

// Query limits
const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 500
)

// Error messages
const (
	ErrMsgEncodePayload = "failed to encode event payload"
	ErrMsgRetention     = "retention days must be positive"
	ErrMsgCleanupFailed = "event log cleanup failed"
)
