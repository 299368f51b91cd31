package app

import (
	"net/http"
	"time"

	"github.com/11bDev/yall-sub001/internal/config"
	"github.com/11bDev/yall-sub001/internal/logging"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home          string         // config directory, e.g. $HOME/.yall
	Passphrase    string         // unlocks the credential store
	DefaultRelays []string       // relays used when an account lists none
	BlossomServer string         // media host base URL; empty disables uploads
	HTTP          *http.Client   // optional; defaults to a client with a request timeout
	Logger        logging.Logger // optional; defaults to logging.New()
}

// FromEnv builds a Config from the process environment, loading .env
// first if present.
func FromEnv() Config {
	config.LoadEnv()
	relays := config.GetEnvList("YALL_RELAYS")
	if len(relays) == 0 {
		relays = []string{"wss://relay.damus.io", "wss://nos.lol"}
	}
	return Config{
		Home:          config.GetEnv("YALL_HOME", ""),
		Passphrase:    config.GetEnv("YALL_PASSPHRASE", ""),
		DefaultRelays: relays,
		BlossomServer: config.GetEnv("YALL_BLOSSOM_SERVER", ""),
	}
}

func (c Config) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (c Config) logger() logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.New()
}
