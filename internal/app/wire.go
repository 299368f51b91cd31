package app

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
	"github.com/11bDev/yall-sub001/internal/relay"
	accountsvc "github.com/11bDev/yall-sub001/internal/services/account"
	"github.com/11bDev/yall-sub001/internal/services/blossom"
	mastodonsvc "github.com/11bDev/yall-sub001/internal/services/mastodon"
	nostrsvc "github.com/11bDev/yall-sub001/internal/services/nostr"
	postsvc "github.com/11bDev/yall-sub001/internal/services/post"
	"github.com/11bDev/yall-sub001/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Accounts  *accountsvc.Service
	Platforms map[domain.Platform]domain.PlatformService
	Post      *postsvc.Service
	Relays    *relay.Client
	Media     *blossom.Uploader
	Store     domain.SecretStore
	HTTP      *http.Client
	Log       logging.Logger

	DefaultRelays []string
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	log := cfg.logger()
	httpClient := cfg.httpClient()

	home := cfg.Home
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".yall")
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, err
	}

	secretStore := store.NewFileStore(home, cfg.Passphrase)
	accounts := accountsvc.New(secretStore)

	relays := relay.New(log, relay.Options{})

	platforms := map[domain.Platform]domain.PlatformService{
		domain.PlatformNostr:    nostrsvc.New(relays, log),
		domain.PlatformMastodon: mastodonsvc.New(httpClient, log),
	}

	w := &Wire{
		Accounts:  accounts,
		Platforms: platforms,
		Post:      postsvc.New(platforms, log),
		Relays:    relays,
		Store:     secretStore,
		HTTP:      httpClient,
		Log:       log,

		DefaultRelays: cfg.DefaultRelays,
	}
	if cfg.BlossomServer != "" {
		w.Media = blossom.New(cfg.BlossomServer, httpClient, log)
	}
	return w, nil
}
