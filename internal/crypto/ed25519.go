package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"ciphera/internal/domain"
)

// GenerateEd25519 returns a new signing identity: a random 32-byte seed and
// the public key it expands to.
func GenerateEd25519() (seed domain.Ed25519Seed, pub domain.Ed25519Public, err error) {
	s := make([]byte, ed25519.SeedSize)
	if _, err = rand.Read(s); err != nil {
		return seed, pub, err
	}
	priv := ed25519.NewKeyFromSeed(s)
	copy(seed[:], s)
	copy(pub[:], priv.Public().(ed25519.PublicKey))
	return seed, pub, nil
}

// SignEd25519 signs msg with the identity derived from seed.
func SignEd25519(seed domain.Ed25519Seed, msg []byte) []byte {
	priv := ed25519.NewKeyFromSeed(seed[:])
	return ed25519.Sign(priv, msg)
}

// VerifyEd25519 verifies sig over msg with pub.
func VerifyEd25519(pub domain.Ed25519Public, msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}
