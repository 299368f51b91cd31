package post

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
	"github.com/11bDev/yall-sub001/internal/retry"
)

// ErrPostInProgress is returned when Post is called while an earlier
// call on the same Service has not finished.
var ErrPostInProgress = errors.New("a post is already in progress")

// Service fans one piece of content out to every selected account. A
// Service runs at most one post at a time.
type Service struct {
	services map[domain.Platform]domain.PlatformService
	log      logging.Logger
	retryCfg retry.Config

	mu       sync.Mutex
	inFlight bool
	cancel   context.CancelFunc
	progress domain.PostingProgress
	last     *domain.PostResult
}

// New returns an orchestrator over the given platform services.
func New(services map[domain.Platform]domain.PlatformService, log logging.Logger) *Service {
	return &Service{
		services: services,
		log:      log,
		retryCfg: retry.Posting(),
		progress: domain.PostingProgress{State: domain.StateIdle},
	}
}

// SetRetryConfig overrides the per-target retry policy. It must not be
// called while a post is in flight.
func (s *Service) SetRetryConfig(cfg retry.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retryCfg = cfg
}

// State returns the current orchestration state.
func (s *Service) State() domain.PostingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.State
}

// Progress returns a snapshot of the in-flight orchestration.
func (s *Service) Progress() domain.PostingProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := domain.PostingProgress{
		State:   s.progress.State,
		Started: s.progress.Started,
		Targets: make(map[string]domain.PlatformPostingStatus, len(s.progress.Targets)),
	}
	for k, v := range s.progress.Targets {
		snap.Targets[k] = v
	}
	return snap
}

// LastResult returns the aggregate of the most recently finished post,
// or nil if none has finished yet.
func (s *Service) LastResult() *domain.PostResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Cancel stops an in-flight post. Targets that already finished keep
// their outcomes; everything still pending is abandoned.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Post publishes content to every account, one goroutine per target.
// Validation failures are returned as errors before anything is sent;
// once the fan-out starts, per-target failures are folded into the
// returned PostResult instead.
func (s *Service) Post(ctx context.Context, content string, accounts []domain.Account) (*domain.PostResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrPostInProgress
	}
	s.inFlight = true
	s.progress = domain.PostingProgress{
		State:   domain.StatePreparing,
		Started: time.Now(),
		Targets: make(map[string]domain.PlatformPostingStatus),
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.inFlight = false
		s.cancel = nil
		s.mu.Unlock()
	}()

	targets, err := s.validate(content, accounts)
	if err != nil {
		s.setState(domain.StateFailed)
		return nil, err
	}
	for _, t := range targets {
		s.setTarget(t.key(), domain.StatusPending)
	}
	s.setState(domain.StatePosting)

	results := make(chan domain.PlatformResult, len(targets))
	var wg sync.WaitGroup
	for _, t := range targets {
		wg.Add(1)
		go func(t target) {
			defer wg.Done()
			results <- s.publishOne(ctx, content, t)
		}(t)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Single writer: only this loop touches the aggregate. Outcomes
	// that land after cancellation are dropped so the final result
	// reflects what actually completed.
	result := domain.NewPostResult(content)
	cancelled := false
	for r := range results {
		if cancelled {
			continue
		}
		if ctx.Err() != nil {
			cancelled = true
			continue
		}
		result.Add(r)
		status := domain.StatusSucceeded
		if !r.Success {
			status = domain.StatusFailed
		}
		s.setTarget(r.Key(), status)
	}

	final := domain.StateCompleted
	switch {
	case cancelled:
		final = domain.StateCancelled
	case result.AllFailed():
		final = domain.StateFailed
	}

	s.mu.Lock()
	s.progress.State = final
	s.last = result
	s.mu.Unlock()

	s.log.WithFields(logging.Fields{
		"state":     final,
		"succeeded": result.SuccessCount(),
		"failed":    result.FailureCount(),
	}).Info("post finished")

	if cancelled {
		return result, context.Canceled
	}
	return result, nil
}

type target struct {
	svc     domain.PlatformService
	account domain.Account
}

func (t target) key() string {
	return domain.TargetKey(t.svc.Platform(), t.account.ID)
}

// validate checks the whole request up front. Any failure rejects the
// post before a single byte is sent anywhere.
func (s *Service) validate(content string, accounts []domain.Account) ([]target, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is empty")
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts selected")
	}

	targets := make([]target, 0, len(accounts))
	limit := 0
	var limitPlatform domain.Platform
	seen := make(map[string]bool)
	for _, acct := range accounts {
		svc, ok := s.services[acct.Platform]
		if !ok {
			return nil, fmt.Errorf("no service registered for platform %q", acct.Platform)
		}
		if !acct.Active {
			return nil, fmt.Errorf("account %s (%s) is inactive", acct.DisplayName, acct.ID)
		}
		t := target{svc: svc, account: acct}
		if seen[t.key()] {
			return nil, fmt.Errorf("account %s selected twice", acct.ID)
		}
		seen[t.key()] = true
		if limit == 0 || svc.CharacterLimit() < limit {
			limit = svc.CharacterLimit()
			limitPlatform = acct.Platform
		}
		targets = append(targets, t)
	}

	// The strictest platform gates everyone: either the content fits
	// every selected platform or nothing is posted at all.
	if n := utf8.RuneCountInString(content); n > limit {
		return nil, fmt.Errorf("content is %d characters; %s allows at most %d", n, limitPlatform, limit)
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].key() < targets[j].key() })
	return targets, nil
}

// publishOne runs a single target end to end: credential pre-check,
// retried publish, panic containment. It always returns an outcome.
func (s *Service) publishOne(ctx context.Context, content string, t target) (res domain.PlatformResult) {
	platform, accountID := t.svc.Platform(), t.account.ID
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logging.Fields{
				"platform": platform,
				"account":  accountID,
				"panic":    r,
			}).Error("platform service panicked")
			res = domain.FailureResult(platform, accountID,
				domain.NewPlatformError(domain.ErrorUnknown, "internal error while posting"))
		}
	}()

	if !t.svc.HasRequiredCredentials(t.account) {
		return domain.FailureResult(platform, accountID,
			domain.NewPlatformError(domain.ErrorInvalidCredentials,
				"account is missing required credentials"))
	}

	s.setTarget(t.key(), domain.StatusPosting)

	// PublishPost folds failures into the result, so the retry layer
	// needs them surfaced as errors to classify. The final error is
	// folded back into a result below.
	name := fmt.Sprintf("post.%s", platform)
	out, err := retry.Do(ctx, s.log, name, s.retryCfg,
		func(ctx context.Context) (domain.PlatformResult, error) {
			r := t.svc.PublishPost(ctx, content, t.account)
			if !r.Success {
				return r, domain.NewPlatformError(r.Kind, "%s", r.Message)
			}
			return r, nil
		})
	if err != nil {
		return domain.FailureResult(platform, accountID, err)
	}
	return out
}

func (s *Service) setState(state domain.PostingState) {
	s.mu.Lock()
	s.progress.State = state
	s.mu.Unlock()
}

func (s *Service) setTarget(key string, status domain.PlatformPostingStatus) {
	s.mu.Lock()
	s.progress.Targets[key] = status
	s.mu.Unlock()
}
