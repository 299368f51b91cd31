package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/11bDev/yall-sub001/internal/util/memzero"
)

const KeyBytes = 32

var (
	// ErrInvalidKeyFormat is returned for malformed hex or bech32 input.
	ErrInvalidKeyFormat = errors.New("invalid key format")
	// ErrInvalidKeyRange is returned when a private scalar is zero or not
	// below the curve order.
	ErrInvalidKeyRange = errors.New("private key outside [1, n-1]")
)

// KeyPair holds a hex-encoded private scalar and its x-only public key.
type KeyPair struct {
	PrivateKey string
	PublicKey  string
}

// GenerateKeyPair draws a fresh private scalar from crypto/rand and derives
// its x-only public key.
func GenerateKeyPair() (KeyPair, error) {
	for {
		var buf [KeyBytes]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return KeyPair{}, err
		}
		var s btcec.ModNScalar
		overflow := s.SetBytes(&buf)
		if overflow != 0 || s.IsZero() {
			s.Zero()
			continue
		}
		s.Zero()

		priv := hex.EncodeToString(buf[:])
		memzero.Zero(buf[:])
		pub, err := DerivePublicKey(priv)
		if err != nil {
			return KeyPair{}, err
		}
		return KeyPair{PrivateKey: priv, PublicKey: pub}, nil
	}
}

// DerivePublicKey computes the 32-byte big-endian x coordinate of priv*G.
// Per the x-only convention the point's y is implicitly even.
func DerivePublicKey(privHex string) (string, error) {
	s, err := parsePrivateKey(privHex)
	if err != nil {
		return "", err
	}
	defer s.Zero()

	d, pub := effectiveScalar(s)
	d.Zero()
	return hex.EncodeToString(pub[:]), nil
}

// parsePrivateKey decodes a 64-char hex scalar and range-checks it.
func parsePrivateKey(privHex string) (*btcec.ModNScalar, error) {
	b, err := hex.DecodeString(privHex)
	if err != nil || len(b) != KeyBytes {
		return nil, ErrInvalidKeyFormat
	}
	var buf [KeyBytes]byte
	copy(buf[:], b)
	memzero.Zero(b)

	var s btcec.ModNScalar
	overflow := s.SetBytes(&buf)
	memzero.Zero(buf[:])
	if overflow != 0 || s.IsZero() {
		s.Zero()
		return nil, ErrInvalidKeyRange
	}
	return &s, nil
}

// effectiveScalar returns the signing scalar adjusted so that scalar*G has
// even y, together with the x-only public key bytes. The same adjustment must
// be applied for both key derivation and signing or signatures will not
// verify.
func effectiveScalar(s *btcec.ModNScalar) (btcec.ModNScalar, [KeyBytes]byte) {
	var p btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(s, &p)
	p.ToAffine()

	d := *s
	if p.Y.IsOdd() {
		d.Negate()
	}
	return d, *p.X.Bytes()
}
