// Package nostr implements the event model and wire framing of the relay
// protocol.
//
// Events are identified by the SHA-256 of a canonical six-element JSON array
// [0, pubkey, created_at, kind, tags, content] and signed with a Schnorr
// signature over that id. Frames are whole-message JSON arrays: ["EVENT", e]
// to publish, ["REQ", sub, filter] to subscribe, and ["OK", id, accepted,
// reason] as the publish acknowledgement.
package nostr
