// Package retry wraps failsafe-go with the error classification this app
// uses: network, server, and rate-limit failures are retryable per config,
// while authentication and credential failures never are, because retrying
// cannot fix a wrong credential.
package retry

import (
	"context"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
)

// Config selects attempt count, backoff shape, and which failure classes are
// worth retrying. It is immutable; call sites use a preset.
type Config struct {
	MaxAttempts    int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	Multiplier     float64
	RetryNetwork   bool
	RetryServer    bool
	RetryRateLimit bool
}

// Posting is the preset for publish calls.
func Posting() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		RetryNetwork: true,
		RetryServer:  true,
	}
}

// Authentication is the preset for credential checks.
func Authentication() Config {
	return Config{
		MaxAttempts:  2,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		RetryNetwork: true,
	}
}

// Validation is the preset for reachability probes.
func Validation() Config {
	return Config{
		MaxAttempts:  2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		RetryNetwork: true,
	}
}

// Do runs op with classification-aware retries. The error returned after the
// final attempt is the operation's own error, not a wrapper.
func Do[T any](ctx context.Context, log logging.Logger, name string, cfg Config, op func(context.Context) (T, error)) (T, error) {
	return DoWith(ctx, log, name, cfg, op, nil)
}

// DoWith additionally consults shouldRetry for errors the standard
// classification would not retry. Authentication and invalid-credential
// failures are final regardless of shouldRetry.
func DoWith[T any](ctx context.Context, log logging.Logger, name string, cfg Config, op func(context.Context) (T, error), shouldRetry func(error) bool) (T, error) {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}

	builder := retrypolicy.NewBuilder[T]().
		WithBackoffFactor(cfg.InitialDelay, cfg.MaxDelay, cfg.Multiplier).
		WithMaxRetries(cfg.MaxAttempts - 1).
		ReturnLastFailure().
		HandleIf(func(_ T, err error) bool {
			return retryable(cfg, err, shouldRetry)
		}).
		OnRetry(func(e failsafe.ExecutionEvent[T]) {
			log.WithFields(logging.Fields{
				"operation": name,
				"attempt":   e.Attempts(),
			}).WithError(e.LastError()).Warn("retrying after failure")
		})

	return failsafe.With(builder.Build()).WithContext(ctx).Get(func() (T, error) {
		return op(ctx)
	})
}

func retryable(cfg Config, err error, shouldRetry func(error) bool) bool {
	if err == nil {
		return false
	}
	switch domain.Classify(err) {
	case domain.ErrorAuthentication, domain.ErrorInvalidCredentials:
		return false
	case domain.ErrorNetwork, domain.ErrorPlatformUnavailable:
		if cfg.RetryNetwork {
			return true
		}
	case domain.ErrorServer:
		if cfg.RetryServer {
			return true
		}
	case domain.ErrorRateLimit:
		if cfg.RetryRateLimit {
			return true
		}
	}
	return shouldRetry != nil && shouldRetry(err)
}
