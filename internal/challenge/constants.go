package challenge

import "time"

// Catalog cache defaults
const (
	DefaultCatalogCacheSize = 16
	DefaultCatalogCacheTTL  = 30 * time.Second

	// CacheSchemaVersion invalidates cached listings when the challenge shape changes
	CacheSchemaVersion = "1.0"

	cacheKeyActive = "active"
	cacheKeyAll    = "all"
)

// Reconciliation batch bounds
const (
	DefaultReconcileLimit = 100
	MaxReconcileLimit     = 1000
)

// Error context messages
const (
	ErrContextLoadChallenge     = "load challenge"
	ErrContextLoadParticipant   = "load participant"
	ErrContextListChallenges    = "list challenges"
	ErrContextListParticipants  = "list participants"
	ErrContextCreateChallenge   = "create challenge"
	ErrContextDeleteChallenge   = "delete challenge"
	ErrContextBeginTx           = "begin transaction"
	ErrContextInsertParticipant = "insert participant"
	ErrContextIncrement         = "increment participants"
	ErrContextCommit            = "commit"
	ErrContextUpdateProgress    = "update progress"
	ErrContextComplete          = "complete participant"
	ErrContextMarkSettled       = "mark reward settled"
	ErrContextSettle            = "settle reward"
	ErrContextListUnsettled     = "list unsettled completions"
)

// Log messages
const (
	LogMsgJoinRejected         = "Join rejected"
	LogMsgJoined               = "User joined challenge"
	LogMsgVerificationRejected = "Completion rejected by verification"
	LogMsgAlreadyCompleted     = "Completion requested on completed participation, ignoring"
	LogMsgCompletionRaced      = "Participation completed concurrently, returning stored row"
	LogMsgCompleted            = "Challenge completed and reward settled"
	LogMsgSettlementFailed     = "Reward settlement failed, completion rolled back"
	LogMsgProgressUpdated      = "Participation progress updated"
	LogMsgChallengeCreated     = "Challenge created"
	LogMsgChallengeDeleted     = "Challenge deleted"
	LogMsgDeleteRejected       = "Delete rejected"
	LogMsgReconciled           = "Reconciled unsettled completion"
	LogMsgReconcileFailed      = "Failed to reconcile completion"
	LogMsgReconcileDone        = "Settlement reconciliation finished"
	LogMsgPublishFailed        = "Failed to publish event"
)
