// Package crypto exposes the primitives the handshake core is built from.
//
// Contents
//
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - A Kyber-512-class KEM (KEMKeypair, KEMEncapsulate, KEMDecapsulate)
//   - HKDF-SHA-256 session key derivation with fixed salt/info (DeriveSessionKey)
//   - AES-256-GCM sealing/opening for both the session AEAD and the
//     identity file (SealAESGCM, OpenAESGCM)
//   - Full-length hex fingerprints of public keys (FingerprintOf)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// All fixed-size values are passed as array types defined in internal/domain
// to avoid accidental reallocation of secret material.
package crypto
