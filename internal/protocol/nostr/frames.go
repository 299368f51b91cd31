package nostr

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Frame labels the protocol defines.
const (
	LabelEvent = "EVENT"
	LabelReq   = "REQ"
	LabelClose = "CLOSE"
	LabelOK    = "OK"
	LabelEOSE  = "EOSE"
)

// Filter is the subscription filter object carried by REQ frames.
type Filter struct {
	Kinds   []int    `json:"kinds,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

// OK is the acknowledgement a relay sends for a published event.
type OK struct {
	EventID  string
	Accepted bool
	Reason   string
}

// EventFrame encodes ["EVENT", e].
func EventFrame(e *Event) ([]byte, error) {
	return marshalFrame([]any{LabelEvent, e})
}

// ReqFrame encodes ["REQ", subscriptionID, filter].
func ReqFrame(subscriptionID string, filter Filter) ([]byte, error) {
	return marshalFrame([]any{LabelReq, subscriptionID, filter})
}

// CloseFrame encodes ["CLOSE", subscriptionID].
func CloseFrame(subscriptionID string) ([]byte, error) {
	return marshalFrame([]any{LabelClose, subscriptionID})
}

// ParseFrame splits a received frame into its label and remaining elements.
func ParseFrame(data []byte) (string, []json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return "", nil, fmt.Errorf("frame is not a JSON array: %w", err)
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("empty frame")
	}
	var label string
	if err := json.Unmarshal(parts[0], &label); err != nil {
		return "", nil, fmt.Errorf("frame label is not a string: %w", err)
	}
	return label, parts[1:], nil
}

// ParseOK decodes the tail of an ["OK", id, accepted, reason?] frame.
func ParseOK(rest []json.RawMessage) (OK, error) {
	var out OK
	if len(rest) < 2 {
		return out, fmt.Errorf("OK frame needs at least id and flag, got %d elements", len(rest))
	}
	if err := json.Unmarshal(rest[0], &out.EventID); err != nil {
		return out, fmt.Errorf("OK event id: %w", err)
	}
	if err := json.Unmarshal(rest[1], &out.Accepted); err != nil {
		return out, fmt.Errorf("OK accepted flag: %w", err)
	}
	if len(rest) > 2 {
		if err := json.Unmarshal(rest[2], &out.Reason); err != nil {
			return out, fmt.Errorf("OK reason: %w", err)
		}
	}
	return out, nil
}

func marshalFrame(frame []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(frame); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
