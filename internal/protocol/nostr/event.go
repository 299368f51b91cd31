package nostr

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/11bDev/yall-sub001/internal/crypto"
)

// Event kinds used by yall.
const (
	KindMetadata   = 0
	KindTextNote   = 1
	KindUploadAuth = 24242
)

// Event is a protocol event. ID and Sig stay empty until Sign computes them;
// they are bound to the exact field values hashed at that moment. Changing
// any identity field afterwards requires calling Sign again, never patching
// ID or Sig by hand.
type Event struct {
	ID        string     `json:"id"`
	PubKey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int        `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Sig       string     `json:"sig"`
}

// NewTextNote returns an unsigned kind-1 event stamped with the given time.
func NewTextNote(content string, at time.Time) *Event {
	return &Event{
		CreatedAt: at.Unix(),
		Kind:      KindTextNote,
		Tags:      [][]string{},
		Content:   content,
	}
}

// Serialize renders the canonical id preimage
// [0, pubkey, created_at, kind, tags, content]. HTML escaping is disabled so
// the bytes match what other protocol consumers hash.
func (e *Event) Serialize() ([]byte, error) {
	tags := e.Tags
	if tags == nil {
		tags = [][]string{}
	}
	arr := []any{0, e.PubKey, e.CreatedAt, e.Kind, tags, e.Content}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(arr); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ComputeID hashes the canonical serialization.
func (e *Event) ComputeID() (string, error) {
	raw, err := e.Serialize()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Sign derives the public key from privHex, recomputes the id from the
// current field values, and signs it. It overwrites any previous ID and Sig.
func (e *Event) Sign(privHex string) error {
	pub, err := crypto.DerivePublicKey(privHex)
	if err != nil {
		return err
	}
	e.PubKey = pub

	id, err := e.ComputeID()
	if err != nil {
		return err
	}
	digest, err := hex.DecodeString(id)
	if err != nil {
		return err
	}
	var d32 [32]byte
	copy(d32[:], digest)

	sig, err := crypto.Sign(privHex, d32)
	if err != nil {
		return err
	}
	e.ID = id
	e.Sig = hex.EncodeToString(sig[:])
	return nil
}

// Validate checks the structural invariants of a signed event.
func (e *Event) Validate() error {
	if len(e.ID) != 64 {
		return fmt.Errorf("event id must be 64 hex chars, got %d", len(e.ID))
	}
	if len(e.Sig) != 128 {
		return fmt.Errorf("event sig must be 128 hex chars, got %d", len(e.Sig))
	}
	if len(e.PubKey) != 64 {
		return fmt.Errorf("event pubkey must be 64 hex chars, got %d", len(e.PubKey))
	}
	id, err := e.ComputeID()
	if err != nil {
		return err
	}
	if id != e.ID {
		return fmt.Errorf("event id does not match serialized fields")
	}
	return nil
}
