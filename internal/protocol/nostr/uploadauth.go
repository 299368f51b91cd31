package nostr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"time"
)

// BuildUploadAuth creates a signed kind-24242 authorization event used as a
// bearer credential by media hosts. The event carries the action, the
// SHA-256 of the blob being authorized, and an expiration timestamp.
func BuildUploadAuth(privHex, action, blobSHA256 string, expiry time.Time) (*Event, error) {
	e := &Event{
		CreatedAt: time.Now().Unix(),
		Kind:      KindUploadAuth,
		Tags: [][]string{
			{"t", action},
			{"x", blobSHA256},
			{"expiration", strconv.FormatInt(expiry.Unix(), 10)},
		},
		Content: action + " " + blobSHA256,
	}
	if err := e.Sign(privHex); err != nil {
		return nil, err
	}
	return e, nil
}

// AuthorizationHeader renders the event as an HTTP Authorization header
/// value: "Nostr " followed by the base64 of the event JSON.
func AuthorizationHeader(e *Event) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return "", err
	}
	raw := bytes.TrimRight(buf.Bytes(), "\n")
	return "Nostr " + base64.StdEncoding.EncodeToString(raw), nil
}
