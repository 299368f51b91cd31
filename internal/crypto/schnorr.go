package crypto

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/11bDev/yall-sub001/internal/util/memzero"
)

// SignatureBytes is the length of a serialized Schnorr signature.
const SignatureBytes = 64

// Sign produces a BIP-340 Schnorr signature R.x || s over digest.
//
// The nonce is the tagged "BIP0340/nonce" hash of the effective private
// scalar and the digest reduced mod n (1 if that reduction is zero), so
// signing is fully deterministic. Both the public key and the nonce point are
// normalized to even y before the challenge is computed.
func Sign(privHex string, digest [32]byte) ([SignatureBytes]byte, error) {
	var sig [SignatureBytes]byte

	s, err := parsePrivateKey(privHex)
	if err != nil {
		return sig, err
	}
	defer s.Zero()

	d, pub := effectiveScalar(s)
	defer d.Zero()

	dBytes := d.Bytes()
	nonceHash := chainhash.TaggedHash(chainhash.TagBIP0340Nonce, dBytes[:], digest[:])
	memzero.Zero(dBytes[:])

	var k btcec.ModNScalar
	k.SetBytes((*[32]byte)(nonceHash))
	defer k.Zero()
	if k.IsZero() {
		k.SetInt(1)
	}

	var r btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&k, &r)
	r.ToAffine()
	if r.Y.IsOdd() {
		// -k*G shares x with k*G and has even y.
		k.Negate()
	}
	rx := *r.X.Bytes()

	eHash := chainhash.TaggedHash(chainhash.TagBIP0340Challenge, rx[:], pub[:], digest[:])
	var e btcec.ModNScalar
	e.SetBytes((*[32]byte)(eHash))

	var sv btcec.ModNScalar
	sv.Mul2(&e, &d).Add(&k)
	sBytes := sv.Bytes()
	sv.Zero()

	copy(sig[:32], rx[:])
	copy(sig[32:], sBytes[:])
	memzero.Zero(sBytes[:])
	return sig, nil
}
