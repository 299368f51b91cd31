package domain

import "time"

// PostingState is the orchestrator's per-invocation state machine.
type PostingState string

const (
	StateIdle      PostingState = "idle"
	StatePreparing PostingState = "preparing"
	StatePosting   PostingState = "posting"
	StateCompleted PostingState = "completed"
	StateCancelled PostingState = "cancelled"
	StateFailed    PostingState = "failed"
)

// PlatformPostingStatus tracks one target while a post is in flight.
type PlatformPostingStatus string

const (
	StatusPending   PlatformPostingStatus = "pending"
	StatusPosting   PlatformPostingStatus = "posting"
	StatusSucceeded PlatformPostingStatus = "succeeded"
	StatusFailed    PlatformPostingStatus = "failed"
)

// PostingProgress is a short-lived snapshot of an in-flight orchestration.
// It is derived state for reporting only and is never persisted.
type PostingProgress struct {
	State   PostingState
	Targets map[string]PlatformPostingStatus
	Started time.Time
}
