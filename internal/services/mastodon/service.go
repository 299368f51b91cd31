package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
	"github.com/11bDev/yall-sub001/internal/retry"
)

// Credential field names for Mastodon accounts.
const (
	CredServerURL   = "server_url"
	CredAccessToken = "access_token"
)

// Default instance limit. Instances can raise it, but 500 is the floor
// everywhere, so validation against it never produces a false accept.
const characterLimit = 500

// Service publishes statuses to a Mastodon instance.
type Service struct {
	http *http.Client
	log  logging.Logger
}

// New returns a Mastodon platform service using the given HTTP client.
func New(client *http.Client, log logging.Logger) *Service {
	return &Service{http: client, log: log}
}

func (s *Service) Platform() domain.Platform { return domain.PlatformMastodon }

func (s *Service) CharacterLimit() int { return characterLimit }

func (s *Service) IsContentValid(content string) bool {
	return utf8.RuneCountInString(content) <= characterLimit
}

func (s *Service) RequiredCredentialFields() []string {
	return []string{CredServerURL, CredAccessToken}
}

func (s *Service) HasRequiredCredentials(account domain.Account) bool {
	for _, field := range s.RequiredCredentialFields() {
		if v, ok := account.Credential(field); !ok || strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Authenticate verifies the token against the instance's credential
// endpoint.
func (s *Service) Authenticate(ctx context.Context, account domain.Account) error {
	server, token, err := s.credentials(account)
	if err != nil {
		return err
	}
	_, err = retry.Do(ctx, s.log, "mastodon.authenticate", retry.Authentication(),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.get(ctx, server+"/api/v1/accounts/verify_credentials", token)
		})
	return err
}

// PublishPost creates a status. Expected failures land in the result,
// never in a raised error.
func (s *Service) PublishPost(ctx context.Context, content string, account domain.Account) domain.PlatformResult {
	server, token, err := s.credentials(account)
	if err != nil {
		return domain.FailureResult(s.Platform(), account.ID, err)
	}
	if !s.IsContentValid(content) {
		return domain.FailureResult(s.Platform(), account.ID,
			domain.NewPlatformError(domain.ErrorContentTooLong,
				"content exceeds %d characters", characterLimit))
	}

	body, err := json.Marshal(map[string]string{"status": content})
	if err != nil {
		return domain.FailureResult(s.Platform(), account.ID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		server+"/api/v1/statuses", bytes.NewReader(body))
	if err != nil {
		return domain.FailureResult(s.Platform(), account.ID, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return domain.FailureResult(s.Platform(), account.ID,
			domain.WrapPlatformError(domain.ErrorNetwork, err, "request failed"))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		s.log.WithFields(logging.Fields{
			"account": account.ID,
			"status":  resp.StatusCode,
		}).Warn("mastodon rejected status")
		return domain.FailureResult(s.Platform(), account.ID, err)
	}

	var status struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return domain.FailureResult(s.Platform(), account.ID,
			domain.WrapPlatformError(domain.ErrorServer, err, "malformed response"))
	}
	msg := "status posted"
	if status.URL != "" {
		msg = "status posted: " + status.URL
	}
	return domain.SuccessResult(s.Platform(), account.ID, msg)
}

// ValidateConnection checks the instance answers its public info
// endpoint; all errors collapse into false.
func (s *Service) ValidateConnection(ctx context.Context, account domain.Account) bool {
	server, _, err := s.credentials(account)
	if err != nil {
		return false
	}
	_, err = retry.Do(ctx, s.log, "mastodon.validate", retry.Validation(),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.get(ctx, server+"/api/v1/instance", "")
		})
	return err == nil
}

func (s *Service) credentials(account domain.Account) (server, token string, err error) {
	if !s.HasRequiredCredentials(account) {
		return "", "", domain.NewPlatformError(domain.ErrorInvalidCredentials,
			"missing credentials: need %s", strings.Join(s.RequiredCredentialFields(), ", "))
	}
	raw, _ := account.Credential(CredServerURL)
	token, _ = account.Credential(CredAccessToken)
	server = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "", domain.NewPlatformError(domain.ErrorInvalidCredentials,
			"server URL %q is not an http(s) URL", raw)
	}
	return server, strings.TrimSpace(token), nil
}

func (s *Service) get(ctx context.Context, endpoint, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return domain.WrapPlatformError(domain.ErrorNetwork, err, "request failed")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return checkStatus(resp)
}

// checkStatus maps Mastodon's HTTP status codes onto error kinds.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.NewPlatformError(domain.ErrorAuthentication,
			"instance returned %s", resp.Status)
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return domain.NewPlatformError(domain.ErrorContentTooLong,
			"instance rejected status: %s", resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.NewPlatformError(domain.ErrorRateLimit,
			"instance returned %s", resp.Status)
	case resp.StatusCode == http.StatusServiceUnavailable:
		return domain.NewPlatformError(domain.ErrorPlatformUnavailable,
			"instance returned %s", resp.Status)
	case resp.StatusCode >= 500:
		return domain.NewPlatformError(domain.ErrorServer,
			"instance returned %s", resp.Status)
	default:
		return domain.NewPlatformError(domain.ErrorUnknown,
			"unexpected response %s", resp.Status)
	}
}

var _ domain.PlatformService = (*Service)(nil)
