package relay

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
	"github.com/11bDev/yall-sub001/internal/protocol/nostr"
)

// Options tunes the per-operation timeouts. Zero values take the defaults.
type Options struct {
	ConnectTimeout     time.Duration // dialing before a publish (default 10s)
	AckTimeout         time.Duration // waiting for the matching OK (default 10s)
	TestConnectTimeout time.Duration // dialing during a reachability probe (default 5s)
	TestReadTimeout    time.Duration // waiting for any frame during a probe (default 3s)
}

// Client talks to relay servers. It holds no connections between operations.
type Client struct {
	log  logging.Logger
	opts Options
}

// New returns a client with defaults filled in.
func New(log logging.Logger, opts Options) *Client {
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.AckTimeout == 0 {
		opts.AckTimeout = 10 * time.Second
	}
	if opts.TestConnectTimeout == 0 {
		opts.TestConnectTimeout = 5 * time.Second
	}
	if opts.TestReadTimeout == 0 {
		opts.TestReadTimeout = 3 * time.Second
	}
	return &Client{log: log, opts: opts}
}

// Summary aggregates a fan-out publish. The overall operation succeeded when
// SuccessCount > 0.
type Summary struct {
	SuccessCount int
	Errors       map[string]error
}

// Failures renders the per-relay errors sorted by relay URL.
func (s Summary) Failures() string {
	if len(s.Errors) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s.Errors))
	for k := range s.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+s.Errors[k].Error())
	}
	return strings.Join(parts, "; ")
}

// TestConnection probes a relay: dial, send a minimal subscription, and wait
// for any frame at all. It proves the read path is alive, nothing more; any
// timeout or transport error is simply false.
func (c *Client) TestConnection(ctx context.Context, relayURL string) bool {
	if err := validateRelayURL(relayURL); err != nil {
		return false
	}

	conn, err := c.dial(ctx, relayURL, c.opts.TestConnectTimeout)
	if err != nil {
		c.log.WithError(err).WithFields(logging.Fields{"relay": relayURL}).Debug("probe dial failed")
		return false
	}
	defer conn.Close()

	frame, err := nostr.ReqFrame(subscriptionID(), nostr.Filter{Limit: 1})
	if err != nil {
		return false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(c.opts.TestReadTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return false
	}

	_ = conn.SetReadDeadline(time.Now().Add(c.opts.TestReadTimeout))
	_, _, err = conn.ReadMessage()
	return err == nil
}

// Publish sends one signed event and waits for the matching acknowledgement.
// The connection is closed whatever the outcome.
func (c *Client) Publish(ctx context.Context, relayURL string, ev *nostr.Event) error {
	if err := validateRelayURL(relayURL); err != nil {
		return err
	}

	conn, err := c.dial(ctx, relayURL, c.opts.ConnectTimeout)
	if err != nil {
		return domain.WrapPlatformError(domain.ErrorNetwork, err, "connect to "+relayURL)
	}
	defer conn.Close()

	frame, err := nostr.EventFrame(ev)
	if err != nil {
		return err
	}
	deadline := time.Now().Add(c.opts.AckTimeout)
	_ = conn.SetWriteDeadline(deadline)
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return domain.WrapPlatformError(domain.ErrorNetwork, err, "send event to "+relayURL)
	}

	_ = conn.SetReadDeadline(deadline)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return domain.WrapPlatformError(domain.ErrorNetwork, err, "awaiting OK from "+relayURL)
		}
		label, rest, err := nostr.ParseFrame(data)
		if err != nil {
			// Tolerate junk frames; the deadline bounds the wait.
			continue
		}
		if label != nostr.LabelOK {
			continue
		}
		ok, err := nostr.ParseOK(rest)
		if err != nil || ok.EventID != ev.ID {
			continue
		}
		if !ok.Accepted {
			reason := ok.Reason
			if reason == "" {
				reason = "no reason given"
			}
			return domain.NewPlatformError(domain.ErrorServer, "%s rejected event: %s", relayURL, reason)
		}
		return nil
	}
}

// PublishToAll publishes to every relay concurrently. No relay's failure
// aborts another; each outcome lands in the summary independently.
func (c *Client) PublishToAll(ctx context.Context, relays []string, ev *nostr.Event) Summary {
	type outcome struct {
		relay string
		err   error
	}
	results := make(chan outcome, len(relays))
	for _, r := range relays {
		go func(relayURL string) {
			results <- outcome{relay: relayURL, err: c.Publish(ctx, relayURL, ev)}
		}(r)
	}

	summary := Summary{Errors: make(map[string]error)}
	for range relays {
		res := <-results
		if res.err != nil {
			summary.Errors[res.relay] = res.err
			c.log.WithError(res.err).WithFields(logging.Fields{
				"relay": res.relay,
				"event": ev.ID,
			}).Warn("relay publish failed")
			continue
		}
		summary.SuccessCount++
		c.log.WithFields(logging.Fields{
			"relay": res.relay,
			"event": ev.ID,
		}).Debug("relay accepted event")
	}
	return summary
}

func (c *Client) dial(ctx context.Context, relayURL string, timeout time.Duration) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, _, err := dialer.DialContext(dctx, relayURL, nil)
	return conn, err
}

func validateRelayURL(relayURL string) error {
	u, err := url.Parse(relayURL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return fmt.Errorf("invalid relay url %q", relayURL)
	}
	return nil
}

func subscriptionID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "yall-" + hex.EncodeToString(b[:])
}
