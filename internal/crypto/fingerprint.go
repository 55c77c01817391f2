package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"ciphera/internal/domain"
)

// FingerprintOf returns the full lowercase-hex SHA-256 digest of an Ed25519
// public key. Callers that want a short display form use Fingerprint.Short.
func FingerprintOf(pub domain.Ed25519Public) domain.Fingerprint {
	sum := sha256.Sum256(pub[:])
	return domain.Fingerprint(hex.EncodeToString(sum[:]))
}
