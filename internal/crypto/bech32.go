package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Human-readable prefixes identifying a key's role.
const (
	PrivateKeyPrefix = "nsec"
	PublicKeyPrefix  = "npub"
)

// EncodeBech32 regroups 8-bit bytes into 5-bit words, zero-padding the tail,
// and encodes them under the given prefix.
func EncodeBech32(hrp string, data []byte) (string, error) {
	words, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, words)
}

// DecodeBech32 decodes s, requiring the prefix to match the expected role.
// The 5-to-8 bit regrouping is strict: non-zero leftover bits are rejected.
func DecodeBech32(expectedHRP, s string) ([]byte, error) {
	hrp, words, err := bech32.Decode(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	if hrp != expectedHRP {
		return nil, fmt.Errorf("%w: prefix %q, want %q", ErrInvalidKeyFormat, hrp, expectedHRP)
	}
	data, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	return data, nil
}

// EncodeNsec renders a hex private key in its shareable bech32 form.
func EncodeNsec(privHex string) (string, error) {
	return encodeKey(PrivateKeyPrefix, privHex)
}

// EncodeNpub renders a hex x-only public key in its shareable bech32 form.
func EncodeNpub(pubHex string) (string, error) {
	return encodeKey(PublicKeyPrefix, pubHex)
}

// DecodeNsec decodes an nsec string back to a hex private key.
func DecodeNsec(s string) (string, error) {
	return decodeKey(PrivateKeyPrefix, s)
}

// DecodeNpub decodes an npub string back to a hex public key.
func DecodeNpub(s string) (string, error) {
	return decodeKey(PublicKeyPrefix, s)
}

func encodeKey(hrp, keyHex string) (string, error) {
	b, err := hex.DecodeString(keyHex)
	if err != nil || len(b) != KeyBytes {
		return "", ErrInvalidKeyFormat
	}
	return EncodeBech32(hrp, b)
}

func decodeKey(hrp, s string) (string, error) {
	b, err := DecodeBech32(hrp, s)
	if err != nil {
		return "", err
	}
	if len(b) != KeyBytes {
		return "", fmt.Errorf("%w: %d byte payload, want %d", ErrInvalidKeyFormat, len(b), KeyBytes)
	}
	return hex.EncodeToString(b), nil
}
