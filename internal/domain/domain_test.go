package domain_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/11bDev/yall-sub001/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"nil", nil, domain.ErrorUnknown},
		{"typed", domain.NewPlatformError(domain.ErrorRateLimit, "slow down"), domain.ErrorRateLimit},
		{"wrappedTyped", fmt.Errorf("posting: %w",
			domain.NewPlatformError(domain.ErrorAuthentication, "nope")), domain.ErrorAuthentication},
		{"deadline", context.DeadlineExceeded, domain.ErrorNetwork},
		{"netOp", &net.OpError{Op: "dial", Err: errors.New("refused")}, domain.ErrorNetwork},
		{"unauthorizedText", errors.New("server said 401 unauthorized"), domain.ErrorAuthentication},
		{"rateLimitText", errors.New("429 too many requests"), domain.ErrorRateLimit},
		{"opaque", errors.New("something odd"), domain.ErrorUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.Classify(tc.err); got != tc.want {
				t.Fatalf("Classify(%v) = %s, want %s", tc.err, got, tc.want)
			}
		})
	}
}

func TestPlatformErrorUnwrap(t *testing.T) {
	cause := errors.New("broken pipe")
	err := domain.WrapPlatformError(domain.ErrorNetwork, cause, "publish failed")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause must survive errors.Is")
	}
	var pe *domain.PlatformError
	if !errors.As(err, &pe) || pe.Kind != domain.ErrorNetwork {
		t.Fatalf("errors.As failed or wrong kind: %+v", pe)
	}
}

func TestPostResultAggregation(t *testing.T) {
	res := domain.NewPostResult("hello")
	if res.AllSuccessful() || res.AllFailed() {
		t.Fatal("empty result must be neither all-successful nor all-failed")
	}

	res.Add(domain.SuccessResult("nostr", "a1", "ok"))
	res.Add(domain.FailureResult("mastodon", "a2", domain.NewPlatformError(domain.ErrorServer, "500")))
	if res.SuccessCount() != 1 || res.FailureCount() != 1 {
		t.Fatalf("counts %d/%d", res.SuccessCount(), res.FailureCount())
	}

	// Re-adding a target replaces its outcome instead of duplicating it.
	res.Add(domain.SuccessResult("mastodon", "a2", "ok on retry"))
	if len(res.Outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(res.Outcomes))
	}
	if !res.AllSuccessful() {
		t.Fatalf("want all successful after overwrite, got %s", res.Summary())
	}
}

func TestPostResultSummary(t *testing.T) {
	res := domain.NewPostResult("hello")
	if res.Summary() != "nothing posted" {
		t.Fatalf("empty summary = %q", res.Summary())
	}
	res.Add(domain.SuccessResult("nostr", "a1", "ok"))
	res.Add(domain.FailureResult("nostr", "a2", errors.New("boom")))
	if res.Summary() != "posted to 1 of 2 targets" {
		t.Fatalf("summary = %q", res.Summary())
	}
}

func TestAccountImmutability(t *testing.T) {
	creds := map[string]string{"token": "secret"}
	acct := domain.NewAccount(domain.PlatformMastodon, "Me", "me", creds)

	creds["token"] = "tampered"
	if v, _ := acct.Credential("token"); v != "secret" {
		t.Fatal("NewAccount must copy the credential map")
	}

	renamed := acct.WithDisplayName("New Name")
	if acct.DisplayName != "Me" || renamed.DisplayName != "New Name" {
		t.Fatal("WithDisplayName must not touch the original")
	}
	if renamed.ID != acct.ID {
		t.Fatal("With* must preserve identity")
	}

	swapped := acct.WithCredentials(map[string]string{"token": "other"})
	if v, _ := acct.Credential("token"); v != "secret" {
		t.Fatal("WithCredentials must not touch the original")
	}
	if v, _ := swapped.Credential("token"); v != "other" {
		t.Fatal("WithCredentials must apply to the copy")
	}

	deactivated := acct.WithActive(false)
	if !acct.Active || deactivated.Active {
		t.Fatal("WithActive must not touch the original")
	}
}
