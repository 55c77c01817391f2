package wire_test

import (
	"bytes"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"ciphera/internal/wire"
)

func TestHandshakeHello_RoundTrips(t *testing.T) {
	h := wire.HandshakeHello{
		Version:      1,
		KEMPublicKey: []byte{1, 2, 3},
		IdentityPub:  bytes.Repeat([]byte{0xAB}, 32),
		IdentitySig:  bytes.Repeat([]byte{0xCD}, 64),
	}
	got, err := wire.DecodeHello(wire.EncodeHello(h))
	if err != nil {
		t.Fatalf("DecodeHello: %v", err)
	}
	if got.Version != h.Version ||
		!bytes.Equal(got.KEMPublicKey, h.KEMPublicKey) ||
		!bytes.Equal(got.IdentityPub, h.IdentityPub) ||
		!bytes.Equal(got.IdentitySig, h.IdentitySig) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, h)
	}
}

func TestDecodeHello_IgnoresUnknownField(t *testing.T) {
	h := wire.HandshakeHello{Version: 1, KEMPublicKey: []byte{9}, IdentityPub: []byte{1}, IdentitySig: []byte{2}}
	b := wire.EncodeHello(h)

	// Append a field number this schema doesn't know about.
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("from the future"))

	got, err := wire.DecodeHello(b)
	if err != nil {
		t.Fatalf("DecodeHello with trailing unknown field: %v", err)
	}
	if got.Version != h.Version || !bytes.Equal(got.KEMPublicKey, h.KEMPublicKey) {
		t.Fatalf("unknown field corrupted known fields: %+v", got)
	}
}

func TestEnvelopeAndChatMessage_RoundTrip(t *testing.T) {
	cm := wire.ChatMessage{
		SenderID:         "alice",
		TimestampUnix:    1700000000,
		Nonce:            bytes.Repeat([]byte{0x01}, 12),
		EncryptedContent: []byte("ciphertext-and-tag"),
	}
	inner := wire.EncodeChatMessage(cm)

	env := wire.Envelope{
		Version:         1,
		ToUsername:      "bob",
		ClientTimestamp: 1700000001,
		PayloadE2E:      inner,
	}
	outer := wire.EncodeEnvelope(env)

	gotEnv, err := wire.DecodeEnvelope(outer)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if gotEnv.ToUsername != env.ToUsername {
		t.Fatalf("ToUsername mismatch: got %q", gotEnv.ToUsername)
	}

	gotMsg, err := wire.DecodeChatMessage(gotEnv.PayloadE2E)
	if err != nil {
		t.Fatalf("DecodeChatMessage: %v", err)
	}
	if gotMsg.SenderID != cm.SenderID || gotMsg.TimestampUnix != cm.TimestampUnix ||
		!bytes.Equal(gotMsg.Nonce, cm.Nonce) || !bytes.Equal(gotMsg.EncryptedContent, cm.EncryptedContent) {
		t.Fatalf("ChatMessage round trip mismatch: got %+v", gotMsg)
	}
}
