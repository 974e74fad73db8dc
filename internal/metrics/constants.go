package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameChallengeJoins         = "challenge_joins_total"
	MetricNameChallengeCompletions   = "challenge_completions_total"
	MetricNameChallengeVerifications = "challenge_verifications_total"
	MetricNameRewardCoreCredited     = "reward_core_credited_total"
	MetricNameRewardItemsCredited    = "reward_items_credited_total"
	MetricNameSettlementFailures     = "reward_settlement_failures_total"
)

// Event log metric names
const (
	MetricNameEventLogCleanupRuns   = "event_log_cleanup_runs_total"
	MetricNameEventLogRowsDeleted   = "event_log_rows_deleted_total"
	MetricNameEventLogLastCleanupTS = "event_log_last_cleanup_timestamp_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextChallengeJoins         = "Total number of join attempts by outcome"
	HelpTextChallengeCompletions   = "Total number of committed challenge completions"
	HelpTextChallengeVerifications = "Total number of verification dispatches by key and outcome"
	HelpTextRewardCoreCredited     = "Total reward amount credited per balance"
	HelpTextRewardItemsCredited    = "Total number of reward item units credited"
	HelpTextSettlementFailures     = "Total number of settlement attempts that rolled back"

	HelpTextEventLogCleanupRuns   = "Total number of event log retention runs by outcome"
	HelpTextEventLogRowsDeleted   = "Total number of event log rows removed by retention"
	HelpTextEventLogLastCleanupTS = "Unix time of the last successful event log retention run"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelResult  = "result"
	LabelKey     = "key"
	LabelBalance = "balance"
)

// Label values
const (
	BalanceAicore = "aicore"
	BalanceWallet = "wallet"

	JoinResultJoined        = "joined"
	JoinResultAlreadyJoined = "already_joined"
	JoinResultFull          = "full"
	JoinResultNotFound      = "not_found"
	JoinResultError         = "error"

	CleanupResultSuccess = "success"
	CleanupResultError   = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
