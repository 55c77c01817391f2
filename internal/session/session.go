// Package session holds the AEAD key a completed handshake establishes and
// encrypts/decrypts application frames with it.
package session

import (
	"time"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/e2eeerr"
	"ciphera/internal/wire"
)

const (
	op              = "session"
	envelopeVersion = uint64(1)
)

// Session wraps a single 32-byte AES-256-GCM key derived from the
// handshake's shared secret. It is not safe for concurrent use from
// multiple goroutines without external synchronization.
type Session struct {
	key   [domain.SessionKeySize]byte
	ready bool
}

// New returns a Session bound to key.
func New(key [domain.SessionKeySize]byte) *Session {
	return &Session{key: key, ready: true}
}

// Ready reports whether the session has an established key.
func (s *Session) Ready() bool { return s != nil && s.ready }

// EncryptApplication seals plaintext under the session key and wraps it in a
// ChatMessage inside an Envelope, returning the serialized frame ready to
// hand to a transport's SendFrame.
func (s *Session) EncryptApplication(plaintext []byte, senderID, toUsername string) ([]byte, error) {
	if !s.Ready() {
		return nil, e2eeerr.New(e2eeerr.Protocol, op, errNotReady)
	}
	nonce, err := crypto.RandomNonce()
	if err != nil {
		return nil, e2eeerr.New(e2eeerr.Crypto, op, err)
	}
	ct, err := crypto.SealAESGCM(s.key, nonce, plaintext)
	if err != nil {
		return nil, e2eeerr.New(e2eeerr.Crypto, op, err)
	}

	now := time.Now().Unix()
	inner := wire.EncodeChatMessage(wire.ChatMessage{
		SenderID:         senderID,
		TimestampUnix:    now,
		Nonce:            nonce,
		EncryptedContent: ct,
	})
	frame := wire.EncodeEnvelope(wire.Envelope{
		Version:         envelopeVersion,
		ToUsername:      toUsername,
		ClientTimestamp: now,
		PayloadE2E:      inner,
	})
	return frame, nil
}

// DecryptApplication parses frame as an Envelope wrapping a ChatMessage and
// opens the AEAD ciphertext under the session key. A malformed frame yields
// a Parse error and leaves the session usable for the next frame.
func (s *Session) DecryptApplication(frame []byte) ([]byte, error) {
	if !s.Ready() {
		return nil, e2eeerr.New(e2eeerr.Protocol, op, errNotReady)
	}
	env, err := wire.DecodeEnvelope(frame)
	if err != nil {
		return nil, err
	}
	msg, err := wire.DecodeChatMessage(env.PayloadE2E)
	if err != nil {
		return nil, err
	}
	pt, err := crypto.OpenAESGCM(s.key, msg.Nonce, msg.EncryptedContent)
	if err != nil {
		return nil, e2eeerr.New(e2eeerr.Crypto, op, err)
	}
	return pt, nil
}

// Close zeroes the session key. The Session must not be used afterward.
func (s *Session) Close() {
	crypto.Wipe(s.key[:])
	s.ready = false
}
