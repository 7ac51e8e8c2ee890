// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 wangdage1949

// Package wif implements decoding and encoding of Bitcoin private keys in
// Wallet Import Format: Base58Check text carrying a mainnet version byte,
// a 32-byte secret, and an optional trailing marker that flags the
// compressed-pubkey convention.
//
// Decode is the expensive validation step of the recovery scan (big-integer
// base conversion plus a double-SHA256 checksum inside base58.CheckDecode),
// so callers are expected to pre-filter candidates before invoking it.
package wif

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Alphabet is the 58-character Base58 symbol set used by the encoding.
// Candidate sets for unknown template positions draw from this string.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	// VersionMainnet is the leading version byte of a mainnet private key.
	VersionMainnet byte = 0x80

	// compressionMarker is the trailing payload byte that flags the
	// compressed-pubkey convention (33-byte payload form).
	compressionMarker byte = 0x01

	// KeyLen is the length of the raw secret in bytes.
	KeyLen = 32
)

// Per-candidate rejection reasons. Every one of these means "not a valid
// WIF, try the next candidate"; none of them is fatal to a scan. Match
// with [errors.Is] or classify with [IsRejection].
var (
	// ErrEncoding is returned when the string is not well-formed
	// Base58Check (character outside the alphabet, or too short to
	// carry a checksum).
	ErrEncoding = errors.New("not a base58check string")

	// ErrChecksum is returned when the trailing 4-byte checksum does not
	// match the double-SHA256 of the decoded version byte plus payload.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrVersion is returned when the leading version byte is not the
	// mainnet private key marker 0x80.
	ErrVersion = errors.New("not a mainnet private key")

	// ErrPayloadLength is returned when the decoded payload is neither
	// 32 bytes nor 33 bytes ending in the compression marker.
	ErrPayloadLength = errors.New("unexpected payload length")
)

// Key is a successfully decoded private key.
type Key struct {
	// Priv is the raw 32-byte secret.
	Priv [KeyLen]byte

	// Compressed reports whether the WIF carried the compressed-pubkey
	// marker byte.
	Compressed bool
}

// PrivateHex returns the secret as a lowercase hex string.
func (k Key) PrivateHex() string {
	return hex.EncodeToString(k.Priv[:])
}

// Decode validates candidate as a mainnet WIF and extracts the key.
//
// The candidate is rejected (never fatally) when it is not well-formed
// Base58Check, its checksum does not verify, its version byte is not
// 0x80, or its payload is neither the 32-byte raw form nor the 33-byte
// form with a trailing 0x01 compression marker.
func Decode(candidate string) (Key, error) {
	payload, version, err := base58.CheckDecode(candidate)
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return Key{}, ErrChecksum
		}
		return Key{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	if version != VersionMainnet {
		return Key{}, fmt.Errorf("%w: version byte 0x%02x", ErrVersion, version)
	}

	var key Key
	switch {
	case len(payload) == KeyLen:
		key.Compressed = false
	case len(payload) == KeyLen+1 && payload[KeyLen] == compressionMarker:
		key.Compressed = true
	default:
		return Key{}, fmt.Errorf("%w: %d bytes", ErrPayloadLength, len(payload))
	}

	copy(key.Priv[:], payload[:KeyLen])
	return key, nil
}

// Encode produces the canonical WIF for a raw secret. It is the exact
// inverse of [Decode]: Decode(Encode(k, c)) yields k and c back, and
// re-encoding a decoded key reproduces the original string.
func Encode(priv [KeyLen]byte, compressed bool) string {
	payload := priv[:]
	if compressed {
		payload = append(append([]byte{}, payload...), compressionMarker)
	}
	return base58.CheckEncode(payload, VersionMainnet)
}

// IsRejection reports whether err is one of the expected per-candidate
// decode rejections, as opposed to an unexpected fault.
func IsRejection(err error) bool {
	return errors.Is(err, ErrEncoding) ||
		errors.Is(err, ErrChecksum) ||
		errors.Is(err, ErrVersion) ||
		errors.Is(err, ErrPayloadLength)
}
