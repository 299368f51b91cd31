package domain

import "context"

// PlatformService is the uniform capability contract each backend implements.
// PublishPost never returns an error for expected failures; it encodes them in
// the result so every backend reports the same shape.
type PlatformService interface {
	// Platform returns the tag this service posts to.
	Platform() Platform

	// Authenticate proves the account's credentials work. It returns a
	// *PlatformError distinguishing missing credentials, network trouble,
	// and rejected credentials.
	Authenticate(ctx context.Context, account Account) error

	// PublishPost posts content on behalf of account.
	PublishPost(ctx context.Context, content string, account Account) PlatformResult

	// ValidateConnection is a best-effort reachability check; errors are
	// swallowed into false.
	ValidateConnection(ctx context.Context, account Account) bool

	// CharacterLimit is the maximum content length in runes.
	CharacterLimit() int

	// IsContentValid reports whether content fits this platform.
	IsContentValid(content string) bool

	// RequiredCredentialFields lists the credential keys an account needs.
	RequiredCredentialFields() []string

	// HasRequiredCredentials reports whether every required key is present
	// and non-empty.
	HasRequiredCredentials(account Account) bool
}

// SecretStore is the external key-value storage contract accounts live
// behind. The core only consumes it.
type SecretStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
