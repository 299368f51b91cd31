package domain

import (
	"fmt"
	"time"
)

// PlatformResult is the outcome of publishing to one {platform, account} pair.
// Expected failures are encoded here, never raised.
type PlatformResult struct {
	Platform  Platform  `json:"platform"`
	AccountID string    `json:"account_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Kind      ErrorKind `json:"error_kind,omitempty"`
}

// TargetKey identifies one {platform, account} pair inside a PostResult.
func TargetKey(platform Platform, accountID string) string {
	return string(platform) + "/" + accountID
}

// Key returns the merge key for this outcome.
func (r PlatformResult) Key() string { return TargetKey(r.Platform, r.AccountID) }

// FailureResult classifies err into a uniform failure outcome. It is the one
// path every backend uses to report a failed publish, so the result shape is
// identical regardless of transport.
func FailureResult(platform Platform, accountID string, err error) PlatformResult {
	return PlatformResult{
		Platform:  platform,
		AccountID: accountID,
		Success:   false,
		Message:   err.Error(),
		Kind:      Classify(err),
	}
}

// SuccessResult reports a successful publish.
func SuccessResult(platform Platform, accountID, message string) PlatformResult {
	return PlatformResult{
		Platform:  platform,
		AccountID: accountID,
		Success:   true,
		Message:   message,
	}
}

// PostResult aggregates per-target outcomes for one orchestration call.
type PostResult struct {
	Content   string                    `json:"content"`
	Timestamp time.Time                 `json:"timestamp"`
	Outcomes  map[string]PlatformResult `json:"outcomes"`
}

// NewPostResult starts an empty aggregate for the given content.
func NewPostResult(content string) *PostResult {
	return &PostResult{
		Content:   content,
		Timestamp: time.Now().UTC(),
		Outcomes:  make(map[string]PlatformResult),
	}
}

// Add merges one target's outcome. Re-adding the same target overwrites the
// prior outcome, including any stale error.
func (p *PostResult) Add(r PlatformResult) {
	p.Outcomes[r.Key()] = r
}

// SuccessCount returns the number of succeeded targets.
func (p *PostResult) SuccessCount() int {
	n := 0
	for _, r := range p.Outcomes {
		if r.Success {
			n++
		}
	}
	return n
}

// FailureCount returns the number of failed targets.
func (p *PostResult) FailureCount() int {
	return len(p.Outcomes) - p.SuccessCount()
}

// AllSuccessful reports whether every target succeeded. Empty results are not
// successful.
func (p *PostResult) AllSuccessful() bool {
	return len(p.Outcomes) > 0 && p.FailureCount() == 0
}

// AllFailed reports whether every target failed.
func (p *PostResult) AllFailed() bool {
	return len(p.Outcomes) > 0 && p.SuccessCount() == 0
}

// Summary renders a human-readable outcome line derived from counts.
func (p *PostResult) Summary() string {
	total := len(p.Outcomes)
	switch {
	case total == 0:
		return "nothing posted"
	case p.AllSuccessful():
		return fmt.Sprintf("posted to all %d targets", total)
	case p.AllFailed():
		return fmt.Sprintf("failed on all %d targets", total)
	default:
		return fmt.Sprintf("posted to %d of %d targets", p.SuccessCount(), total)
	}
}
