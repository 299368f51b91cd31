package mastodon_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
	"github.com/11bDev/yall-sub001/internal/services/mastodon"
)

func mastodonAccount(server string) domain.Account {
	return domain.NewAccount(domain.PlatformMastodon, "Test", "tester", map[string]string{
		mastodon.CredServerURL:   server,
		mastodon.CredAccessToken: "token-123",
	})
}

func TestPublishPost(t *testing.T) {
	var gotAuth, gotStatus string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/statuses" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotStatus = body.Status
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "42",
			"url": "https://example.social/@tester/42",
		})
	}))
	defer srv.Close()

	svc := mastodon.New(srv.Client(), logging.NewNop())
	res := svc.PublishPost(context.Background(), "hello fediverse", mastodonAccount(srv.URL))
	if !res.Success {
		t.Fatalf("want success, got %+v", res)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotStatus != "hello fediverse" {
		t.Fatalf("posted status = %q", gotStatus)
	}
	if !strings.Contains(res.Message, "@tester/42") {
		t.Fatalf("message should carry status URL: %q", res.Message)
	}
}

func TestPublishPost_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   domain.ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrorAuthentication},
		{"forbidden", http.StatusForbidden, domain.ErrorAuthentication},
		{"tooLong", http.StatusUnprocessableEntity, domain.ErrorContentTooLong},
		{"rateLimited", http.StatusTooManyRequests, domain.ErrorRateLimit},
		{"unavailable", http.StatusServiceUnavailable, domain.ErrorPlatformUnavailable},
		{"serverError", http.StatusInternalServerError, domain.ErrorServer},
		{"teapot", http.StatusTeapot, domain.ErrorUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			svc := mastodon.New(srv.Client(), logging.NewNop())
			res := svc.PublishPost(context.Background(), "hello", mastodonAccount(srv.URL))
			if res.Success {
				t.Fatal("want failure")
			}
			if res.Kind != tc.kind {
				t.Fatalf("kind = %s, want %s", res.Kind, tc.kind)
			}
		})
	}
}

func TestPublishPost_LocalValidation(t *testing.T) {
	svc := mastodon.New(http.DefaultClient, logging.NewNop())

	res := svc.PublishPost(context.Background(), strings.Repeat("x", 501),
		mastodonAccount("https://example.social"))
	if res.Success || res.Kind != domain.ErrorContentTooLong {
		t.Fatalf("want contentTooLong without a request, got %+v", res)
	}

	res = svc.PublishPost(context.Background(), "hello",
		domain.NewAccount(domain.PlatformMastodon, "Test", "tester", nil))
	if res.Success || res.Kind != domain.ErrorInvalidCredentials {
		t.Fatalf("want invalidCredentials, got %+v", res)
	}

	res = svc.PublishPost(context.Background(), "hello",
		domain.NewAccount(domain.PlatformMastodon, "Test", "tester", map[string]string{
			mastodon.CredServerURL:   "ftp://example.social",
			mastodon.CredAccessToken: "token",
		}))
	if res.Success || res.Kind != domain.ErrorInvalidCredentials {
		t.Fatalf("non-http URL should fail credential validation, got %+v", res)
	}
}

func TestAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts/verify_credentials" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer token-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"username":"tester"}`))
	}))
	defer srv.Close()

	svc := mastodon.New(srv.Client(), logging.NewNop())
	if err := svc.Authenticate(context.Background(), mastodonAccount(srv.URL)); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	bad := domain.NewAccount(domain.PlatformMastodon, "Test", "tester", map[string]string{
		mastodon.CredServerURL:   srv.URL,
		mastodon.CredAccessToken: "wrong",
	})
	err := svc.Authenticate(context.Background(), bad)
	if domain.Classify(err) != domain.ErrorAuthentication {
		t.Fatalf("want authenticationError, got %v", err)
	}
}

func TestValidateConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/instance" {
			w.Write([]byte(`{"title":"test"}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	svc := mastodon.New(srv.Client(), logging.NewNop())
	if !svc.ValidateConnection(context.Background(), mastodonAccount(srv.URL)) {
		t.Fatal("reachable instance should validate")
	}
	if svc.ValidateConnection(context.Background(), domain.NewAccount(domain.PlatformMastodon, "x", "y", nil)) {
		t.Fatal("missing credentials must yield false")
	}
}
