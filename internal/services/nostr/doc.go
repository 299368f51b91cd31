// Package nostr implements the platform contract on top of the event engine
// and the relay transport client. A publish signs one event with the
// account's private key and fans it out to every configured relay; the
// publish succeeds when at least one relay accepts.
package nostr
