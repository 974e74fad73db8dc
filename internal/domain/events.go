package domain

// Event type constants published on the in-process bus.
//
// Event types follow the pattern: <entity>.<action>
const (
	// EventTypeChallengeJoined is published after a join commits
	EventTypeChallengeJoined = "challenge.joined"

	// EventTypeChallengeCompleted is published after a completion commits
	EventTypeChallengeCompleted = "challenge.completed"

	// EventTypeRewardSettled is published once per settled completion, including reconciled ones
	EventTypeRewardSettled = "reward.settled"

	EventTypeChallengeCreated = "challenge.created"
	EventTypeChallengeDeleted = "challenge.deleted"
)
