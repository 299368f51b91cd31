package domain

import (
	"time"

	"github.com/google/uuid"
)

// Platform tags which backend an account or result belongs to.
type Platform string

const (
	PlatformNostr    Platform = "nostr"
	PlatformMastodon Platform = "mastodon"
)

// Account is an immutable value: every mutation goes through a With* method
// that returns a fresh copy. Credentials are an opaque string map whose
// required keys are declared by the owning platform service.
type Account struct {
	ID          string            `json:"id"`
	Platform    Platform          `json:"platform"`
	DisplayName string            `json:"display_name"`
	Username    string            `json:"username"`
	CreatedAt   time.Time         `json:"created_at"`
	Active      bool              `json:"active"`
	Credentials map[string]string `json:"credentials"`
}

// NewAccount returns an active account with a fresh id and its own copy of
// the credential map.
func NewAccount(platform Platform, displayName, username string, credentials map[string]string) Account {
	return Account{
		ID:          uuid.NewString(),
		Platform:    platform,
		DisplayName: displayName,
		Username:    username,
		CreatedAt:   time.Now().UTC(),
		Active:      true,
		Credentials: cloneCredentials(credentials),
	}
}

// Credential looks up one credential value.
func (a Account) Credential(key string) (string, bool) {
	v, ok := a.Credentials[key]
	return v, ok
}

// WithDisplayName returns a copy with a new display name.
func (a Account) WithDisplayName(name string) Account {
	out := a.clone()
	out.DisplayName = name
	return out
}

// WithActive returns a copy with the active flag set.
func (a Account) WithActive(active bool) Account {
	out := a.clone()
	out.Active = active
	return out
}

// WithCredentials returns a copy holding its own copy of the given map.
func (a Account) WithCredentials(credentials map[string]string) Account {
	out := a.clone()
	out.Credentials = cloneCredentials(credentials)
	return out
}

func (a Account) clone() Account {
	out := a
	out.Credentials = cloneCredentials(a.Credentials)
	return out
}

func cloneCredentials(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
