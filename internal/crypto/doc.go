// Package crypto exposes the key and signature primitives used by yall.
//
// Contents
//
//   - secp256k1 key generation and x-only public key derivation with the
//     even-y convention (GenerateKeyPair, DerivePublicKey)
//   - deterministic BIP-340 style Schnorr signing over 32-byte digests (Sign)
//   - bech32 encoding of shareable keys with role prefixes (EncodeNsec,
//     EncodeNpub, DecodeNsec, DecodeNpub)
//
// # Notes
//
// Signing derives its nonce from a tagged hash of the effective private
// scalar and the digest, never from a random source, so re-signing the same
// input with the same key is byte-for-byte reproducible. Both the public key
// and the nonce point are normalized to even y; verifiers reject signatures
// without that normalization.
package crypto
