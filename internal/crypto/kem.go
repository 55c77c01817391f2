package crypto

import (
	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/kyber/kyber512"
)

// KEMScheme is the Kyber-512-class key encapsulation mechanism used for the
// handshake. It is exposed as a package-level value so callers never need
// to know which CIRCL subpackage backs it.
var KEMScheme = kyber512.Scheme()

// KEMKeypair generates a fresh KEM keypair, returning the public key bytes
// and the private key handle (kept in memory only, for decapsulation).
func KEMKeypair() (pub []byte, priv kem.PrivateKey, err error) {
	pk, sk, err := KEMScheme.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	pubBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	return pubBytes, sk, nil
}

// KEMEncapsulate derives a shared secret against a peer's public key,
// returning the ciphertext to send back and the resulting shared secret.
func KEMEncapsulate(peerPub []byte) (ciphertext, sharedSecret []byte, err error) {
	pk, err := KEMScheme.UnmarshalBinaryPublicKey(peerPub)
	if err != nil {
		return nil, nil, err
	}
	ct, ss, err := KEMScheme.Encapsulate(pk)
	if err != nil {
		return nil, nil, err
	}
	return ct, ss, nil
}

// KEMDecapsulate recovers the shared secret from a ciphertext using the
// private key produced alongside the original public key.
func KEMDecapsulate(priv kem.PrivateKey, ciphertext []byte) ([]byte, error) {
	return KEMScheme.Decapsulate(priv, ciphertext)
}
