package nostr

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/11bDev/yall-sub001/internal/crypto"
	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
	"github.com/11bDev/yall-sub001/internal/protocol/nostr"
	"github.com/11bDev/yall-sub001/internal/relay"
	"github.com/11bDev/yall-sub001/internal/retry"
)

// Credential keys a nostr account carries.
const (
	CredPrivateKey = "private_key" // hex or nsec
	CredRelays     = "relays"      // comma-separated relay URLs
)

const characterLimit = 10000

// RelayClient is the slice of the transport client this service needs.
type RelayClient interface {
	TestConnection(ctx context.Context, relayURL string) bool
	PublishToAll(ctx context.Context, relays []string, ev *nostr.Event) relay.Summary
}

// Service posts to nostr relays.
type Service struct {
	relays RelayClient
	log    logging.Logger
}

// New returns a nostr platform service.
func New(relays RelayClient, log logging.Logger) *Service {
	return &Service{relays: relays, log: log}
}

func (s *Service) Platform() domain.Platform { return domain.PlatformNostr }

func (s *Service) CharacterLimit() int { return characterLimit }

func (s *Service) IsContentValid(content string) bool {
	return utf8.RuneCountInString(content) <= characterLimit
}

func (s *Service) RequiredCredentialFields() []string {
	return []string{CredPrivateKey, CredRelays}
}

func (s *Service) HasRequiredCredentials(account domain.Account) bool {
	for _, field := range s.RequiredCredentialFields() {
		if v, ok := account.Credential(field); !ok || strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Authenticate validates the key material and proves at least one relay is
// reachable.
func (s *Service) Authenticate(ctx context.Context, account domain.Account) error {
	priv, relays, err := s.credentials(account)
	if err != nil {
		return err
	}
	if _, err := crypto.DerivePublicKey(priv); err != nil {
		return domain.WrapPlatformError(domain.ErrorInvalidCredentials, err, "private key rejected")
	}

	_, err = retry.Do(ctx, s.log, "nostr.authenticate", retry.Authentication(),
		func(ctx context.Context) (struct{}, error) {
			for _, r := range relays {
				if s.relays.TestConnection(ctx, r) {
					return struct{}{}, nil
				}
			}
			return struct{}{}, domain.NewPlatformError(domain.ErrorNetwork, "no relay reachable out of %d", len(relays))
		})
	return err
}

// PublishPost signs the content as a kind-1 event and fans it out. Expected
// failures land in the result, never in a raised error.
func (s *Service) PublishPost(ctx context.Context, content string, account domain.Account) domain.PlatformResult {
	priv, relays, err := s.credentials(account)
	if err != nil {
		return domain.FailureResult(s.Platform(), account.ID, err)
	}
	if !s.IsContentValid(content) {
		return domain.FailureResult(s.Platform(), account.ID,
			domain.NewPlatformError(domain.ErrorContentTooLong, "content exceeds %d characters", characterLimit))
	}

	ev := nostr.NewTextNote(content, time.Now())
	if err := ev.Sign(priv); err != nil {
		return domain.FailureResult(s.Platform(), account.ID,
			domain.WrapPlatformError(domain.ErrorInvalidCredentials, err, "signing failed"))
	}

	summary := s.relays.PublishToAll(ctx, relays, ev)
	if summary.SuccessCount == 0 {
		return domain.FailureResult(s.Platform(), account.ID,
			domain.NewPlatformError(domain.ErrorNetwork, "no relay accepted the event: %s", summary.Failures()))
	}
	return domain.SuccessResult(s.Platform(), account.ID,
		fmt.Sprintf("accepted by %d of %d relays", summary.SuccessCount, len(relays)))
}

// ValidateConnection reports whether any configured relay answers; all
// errors collapse into false.
func (s *Service) ValidateConnection(ctx context.Context, account domain.Account) bool {
	_, relays, err := s.credentials(account)
	if err != nil {
		return false
	}
	_, err = retry.Do(ctx, s.log, "nostr.validate", retry.Validation(),
		func(ctx context.Context) (struct{}, error) {
			for _, r := range relays {
				if s.relays.TestConnection(ctx, r) {
					return struct{}{}, nil
				}
			}
			return struct{}{}, domain.NewPlatformError(domain.ErrorNetwork, "no relay reachable")
		})
	return err == nil
}

// credentials extracts and normalizes the account's key and relay list.
func (s *Service) credentials(account domain.Account) (string, []string, error) {
	if !s.HasRequiredCredentials(account) {
		return "", nil, domain.NewPlatformError(domain.ErrorInvalidCredentials,
			"missing credentials: need %s", strings.Join(s.RequiredCredentialFields(), ", "))
	}
	priv, _ := account.Credential(CredPrivateKey)
	priv = strings.TrimSpace(priv)
	if strings.HasPrefix(priv, crypto.PrivateKeyPrefix+"1") {
		decoded, err := crypto.DecodeNsec(priv)
		if err != nil {
			return "", nil, domain.WrapPlatformError(domain.ErrorInvalidCredentials, err, "bad nsec key")
		}
		priv = decoded
	}

	rawRelays, _ := account.Credential(CredRelays)
	var relays []string
	for _, r := range strings.Split(rawRelays, ",") {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			relays = append(relays, trimmed)
		}
	}
	if len(relays) == 0 {
		return "", nil, domain.NewPlatformError(domain.ErrorInvalidCredentials, "no relays configured")
	}
	return priv, relays, nil
}

// Compile-time assertion that Service implements domain.PlatformService.
var _ domain.PlatformService = (*Service)(nil)
