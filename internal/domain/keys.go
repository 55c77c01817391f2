// Package domain holds the shared value types and collaborator interfaces
// used across the handshake core: identities, fingerprints, and the
// transport/store contracts the protocol layer is built against.
package domain

import "fmt"

const (
	Ed25519PublicSize = 32
	Ed25519SeedSize   = 32
)

// Ed25519Public is a raw, unwrapped Ed25519 verification key.
type Ed25519Public [Ed25519PublicSize]byte

// Ed25519Seed is the 32-byte seed crypto/ed25519 expands into a private key.
type Ed25519Seed [Ed25519SeedSize]byte

// MustEd25519Public panics if b is not exactly 32 bytes; used when parsing
// values the caller has already length-checked (e.g. off a fixed wire field).
func MustEd25519Public(b []byte) Ed25519Public {
	if len(b) != Ed25519PublicSize {
		panic(fmt.Sprintf("domain: Ed25519 public key must be %d bytes, got %d", Ed25519PublicSize, len(b)))
	}
	var out Ed25519Public
	copy(out[:], b)
	return out
}

// Fingerprint is the lowercase-hex SHA-256 digest of an Ed25519 public key.
type Fingerprint string

// Short returns the conventional truncated display form (first 16 hex chars).
func (f Fingerprint) Short() string {
	if len(f) <= 16 {
		return string(f)
	}
	return string(f[:16])
}

// Identity is a loaded signing identity: an Ed25519 keypair plus its
// fingerprint, held in memory only for the lifetime of a session.
type Identity struct {
	Public      Ed25519Public
	Seed        Ed25519Seed
	Fingerprint Fingerprint
}
