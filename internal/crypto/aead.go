package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"ciphera/internal/domain"
)

const (
	AEADKeySize   = 32
	AEADNonceSize = 12
	AEADTagSize   = 16
)

var errBadNonceSize = errors.New("crypto: AES-GCM nonce must be 12 bytes")

// RandomNonce returns a fresh random 12-byte GCM nonce.
func RandomNonce() ([]byte, error) {
	n := make([]byte, AEADNonceSize)
	if _, err := rand.Read(n); err != nil {
		return nil, err
	}
	return n, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, AEADNonceSize)
}

// SealAESGCM encrypts plaintext with AES-256-GCM and no associated data,
// returning ciphertext with the 16-byte tag appended. It fails if nonce is
// not 12 bytes.
func SealAESGCM(key [domain.SessionKeySize]byte, nonce, plaintext []byte) ([]byte, error) {
	if len(nonce) != AEADNonceSize {
		return nil, errBadNonceSize
	}
	gcm, err := newGCM(key[:])
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// OpenAESGCM decrypts ciphertext||tag with AES-256-GCM, returning an error
// if the nonce is not 12 bytes or the tag fails to verify.
func OpenAESGCM(key [domain.SessionKeySize]byte, nonce, ciphertextAndTag []byte) ([]byte, error) {
	if len(nonce) != AEADNonceSize {
		return nil, errBadNonceSize
	}
	gcm, err := newGCM(key[:])
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, nonce, ciphertextAndTag, nil)
}
