package verification

// Built-in verifier keys
const (
	KeyNone            = "none"
	KeyMinLevel        = "min_level"
	KeyMinCoreBalance  = "min_core_balance"
	KeyHoldsItem       = "holds_item"
	KeyProgressCounter = "progress_counter"
	KeyChecklist       = "checklist"
)

// Dispatch outcomes, used as metric label values
const (
	ResultPassed     = "passed"
	ResultRejected   = "rejected"
	ResultUnknownKey = "unknown_key"
	ResultError      = "error"
	ResultPanic      = "panic"
)

// Log messages
const (
	LogMsgUnknownVerifier  = "Unknown verification key, failing closed"
	LogMsgVerifierError    = "Verifier returned error, failing closed"
	LogMsgVerifierPanicked = "Verifier panicked, failing closed"
	LogMsgVerifierResult   = "Verification evaluated"
)

// Error messages
const (
	ErrMsgDuplicateVerifier = "verifier already registered"
	ErrMsgEmptyKey          = "verifier key must not be empty"
	ErrMsgMissingParams     = "verification params missing"
	ErrMsgInvalidParams     = "verification params invalid"
)
