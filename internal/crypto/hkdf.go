package crypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"ciphera/internal/domain"
)

// Fixed domain-separation parameters for the session key derivation.
var (
	hkdfSalt = []byte("E2EE-v1")
	hkdfInfo = []byte("AES-256-GCM")
)

// DeriveSessionKey expands the KEM shared secret into the 32-byte AES-256-GCM
// key used for the session, via HKDF-SHA-256 with fixed salt and info.
func DeriveSessionKey(sharedSecret []byte) ([domain.SessionKeySize]byte, error) {
	var out [domain.SessionKeySize]byte
	r := hkdf.New(sha256.New, sharedSecret, hkdfSalt, hkdfInfo)
	if _, err := io.ReadFull(r, out[:]); err != nil {
		return out, err
	}
	return out, nil
}
