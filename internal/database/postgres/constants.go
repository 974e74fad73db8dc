package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced challenge or user is missing
	PgErrorCodeForeignKeyViolation = "23503"
)

// ConstraintParticipantUnique names the (challenge_id, user_id) uniqueness constraint
const ConstraintParticipantUnique = "challenge_participants_unique"

// Error Messages
const (
	ErrMsgFailedToBeginTransaction = "failed to begin challenge transaction"
	ErrMsgFailedToListChallenges   = "failed to list challenges"
	ErrMsgFailedToGetChallenge     = "failed to get challenge"
	ErrMsgFailedToCreateChallenge  = "failed to create challenge"
	ErrMsgFailedToDeleteChallenge  = "failed to delete challenge"
	ErrMsgFailedToGetParticipant   = "failed to get participant"
	ErrMsgFailedToListParticipants = "failed to list participants"
	ErrMsgFailedToUpdateProgress   = "failed to update progress"
	ErrMsgFailedToInsertPart       = "failed to insert participant"
	ErrMsgFailedToIncrement        = "failed to increment participants"
	ErrMsgFailedToComplete         = "failed to complete participant"
	ErrMsgFailedToMarkSettled      = "failed to mark reward settled"
	ErrMsgFailedToGetBalance       = "failed to get balance"
	ErrMsgFailedToUpdateBalance    = "failed to update balance"
	ErrMsgFailedToGetInventory     = "failed to get inventory"
	ErrMsgFailedToUpdateInventory  = "failed to update inventory"
	ErrMsgFailedToEncodeJSON       = "failed to encode json column"
	ErrMsgFailedToDecodeJSON       = "failed to decode json column"
	ErrMsgFailedToLogEvent         = "failed to log event"
	ErrMsgFailedToGetEvents        = "failed to get events"
	ErrMsgFailedToCleanupEvents    = "failed to clean up events"
)

// Challenge SQL
const (
	challengeColumns = `id::text, title, description, is_active, max_participants, current_participants,
		verification_type, verification_key, verification_params, reward_core, reward_items,
		owner_id::text, type, priority, created_at`

	SQLListActiveChallenges = `SELECT ` + challengeColumns + `
		FROM challenges
		WHERE is_active = TRUE
		ORDER BY priority DESC, created_at DESC`

	SQLListAllChallenges = `SELECT ` + challengeColumns + `
		FROM challenges
		ORDER BY priority DESC, created_at DESC`

	SQLGetChallenge = `SELECT ` + challengeColumns + `
		FROM challenges
		WHERE id = $1`

	SQLInsertChallenge = `INSERT INTO challenges (
			title, description, is_active, max_participants, current_participants,
			verification_type, verification_key, verification_params, reward_core, reward_items,
			owner_id, type, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id::text, created_at`

	SQLDeleteChallengeParticipants = `DELETE FROM challenge_participants WHERE challenge_id = $1`

	SQLDeleteChallenge = `DELETE FROM challenges WHERE id = $1`

	// SQLIncrementParticipants is the single guarded increment that enforces capacity
	SQLIncrementParticipants = `UPDATE challenges
		SET current_participants = current_participants + 1
		WHERE id = $1
		  AND is_active = TRUE
		  AND (max_participants = 0 OR current_participants < max_participants)
		RETURNING current_participants`
)

// Participant SQL
const (
	participantColumns = `id::text, challenge_id::text, user_id::text, status, progress_data,
		joined_at, completed_at, reward_settled_at`

	SQLGetParticipant = `SELECT ` + participantColumns + `
		FROM challenge_participants
		WHERE challenge_id = $1 AND user_id = $2`

	SQLListUserParticipants = `SELECT ` + participantColumns + `
		FROM challenge_participants
		WHERE user_id = $1
		ORDER BY joined_at DESC`

	SQLInsertParticipant = `INSERT INTO challenge_participants (challenge_id, user_id, status, progress_data)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + participantColumns

	SQLUpdateProgress = `UPDATE challenge_participants
		SET progress_data = $3
		WHERE challenge_id = $1 AND user_id = $2 AND status = 'active'
		RETURNING ` + participantColumns

	// SQLCompleteParticipant only matches active rows so completed_at is written exactly once
	SQLCompleteParticipant = `UPDATE challenge_participants
		SET status = 'completed', progress_data = $3, completed_at = $4
		WHERE challenge_id = $1 AND user_id = $2 AND status = 'active'
		RETURNING ` + participantColumns

	SQLMarkRewardSettled = `UPDATE challenge_participants
		SET reward_settled_at = $2
		WHERE id = $1 AND status = 'completed' AND reward_settled_at IS NULL`

	SQLListUnsettledCompletions = `SELECT ` + participantColumns + `
		FROM challenge_participants
		WHERE status = 'completed' AND reward_settled_at IS NULL
		ORDER BY completed_at ASC
		LIMIT $1`
)

// User state SQL
const (
	SQLGetUserBalance = `SELECT id::text, wallet_balance::text, aicore_balance::text, level
		FROM users WHERE id = $1`

	SQLGetUserBalanceForUpdate = SQLGetUserBalance + ` FOR UPDATE`

	SQLUpdateUserBalance = `UPDATE users
		SET wallet_balance = $2::text::numeric, aicore_balance = $3::text::numeric, updated_at = NOW()
		WHERE id = $1`

	SQLGetInventory = `SELECT inventory FROM user_results WHERE user_id = $1`

	SQLGetInventoryForUpdate = SQLGetInventory + ` FOR UPDATE`

	// SQLEnsureUserResults creates the row so FOR UPDATE has something to lock
	SQLEnsureUserResults = `INSERT INTO user_results (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`

	SQLUpsertInventory = `INSERT INTO user_results (user_id, inventory, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET inventory = EXCLUDED.inventory, updated_at = NOW()`
)

// Event log SQL
const (
	SQLInsertEvent = `INSERT INTO challenge_events (event_type, challenge_id, user_id, payload, metadata)
		VALUES ($1, $2, $3, $4, $5)`

	SQLSelectEvents = `SELECT id, event_type, challenge_id, user_id, payload, metadata, created_at
		FROM challenge_events`

	SQLDeleteEventsBefore = `DELETE FROM challenge_events
		WHERE created_at < NOW() - INTERVAL '1 day' * $1`
)
