// Package wire encodes and decodes the four handshake/session record types
// as a tagged binary schema, using the protobuf wire format directly
// (via protowire) rather than a generated .pb.go file. Decoding skips any
// field number it doesn't recognize, so a peer running a newer schema with
// extra fields still interoperates.
package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"ciphera/internal/e2eeerr"
)

const op = "wire"

// HandshakeHello is the client's opening message: its ephemeral KEM public
// key and its long-lived signing identity, with a signature binding them.
type HandshakeHello struct {
	Version       uint64
	KEMPublicKey  []byte
	IdentityPub   []byte
	IdentitySig   []byte
}

// HandshakeResponse is the server's reply: the KEM ciphertext encapsulated
// to the client's public key, plus the server's own signing identity.
type HandshakeResponse struct {
	Version        uint64
	KEMCiphertext  []byte
	IdentityPub    []byte
	IdentitySig    []byte
}

// ChatMessage is the inner, session-AEAD-encrypted payload.
type ChatMessage struct {
	SenderID         string
	TimestampUnix    int64
	Nonce            []byte
	EncryptedContent []byte
}

// Envelope is the outer frame carried over the transport.
type Envelope struct {
	Version         uint64
	ToUsername      string
	ClientTimestamp int64
	PayloadE2E      []byte
}

const (
	fieldHelloVersion = 1
	fieldHelloKEMPub  = 2
	fieldHelloIDPub   = 3
	fieldHelloIDSig   = 4

	fieldRespVersion = 1
	fieldRespKEMCt   = 2
	fieldRespIDPub   = 3
	fieldRespIDSig   = 4

	fieldMsgSender    = 1
	fieldMsgTimestamp = 2
	fieldMsgNonce     = 3
	fieldMsgContent   = 4

	fieldEnvVersion   = 1
	fieldEnvTo        = 2
	fieldEnvTimestamp = 3
	fieldEnvPayload   = 4
)

func EncodeHello(h HandshakeHello) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldHelloVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, h.Version)
	b = protowire.AppendTag(b, fieldHelloKEMPub, protowire.BytesType)
	b = protowire.AppendBytes(b, h.KEMPublicKey)
	b = protowire.AppendTag(b, fieldHelloIDPub, protowire.BytesType)
	b = protowire.AppendBytes(b, h.IdentityPub)
	b = protowire.AppendTag(b, fieldHelloIDSig, protowire.BytesType)
	b = protowire.AppendBytes(b, h.IdentitySig)
	return b
}

func DecodeHello(b []byte) (HandshakeHello, error) {
	var h HandshakeHello
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return h, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldHelloVersion:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return h, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			h.Version = v
			b = b[m:]
		case fieldHelloKEMPub:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return h, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			h.KEMPublicKey = append([]byte(nil), v...)
			b = b[m:]
		case fieldHelloIDPub:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return h, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			h.IdentityPub = append([]byte(nil), v...)
			b = b[m:]
		case fieldHelloIDSig:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return h, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			h.IdentitySig = append([]byte(nil), v...)
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return h, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return h, nil
}

func EncodeResponse(r HandshakeResponse) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldRespVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, r.Version)
	b = protowire.AppendTag(b, fieldRespKEMCt, protowire.BytesType)
	b = protowire.AppendBytes(b, r.KEMCiphertext)
	b = protowire.AppendTag(b, fieldRespIDPub, protowire.BytesType)
	b = protowire.AppendBytes(b, r.IdentityPub)
	b = protowire.AppendTag(b, fieldRespIDSig, protowire.BytesType)
	b = protowire.AppendBytes(b, r.IdentitySig)
	return b
}

func DecodeResponse(b []byte) (HandshakeResponse, error) {
	var r HandshakeResponse
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return r, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldRespVersion:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return r, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			r.Version = v
			b = b[m:]
		case fieldRespKEMCt:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return r, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			r.KEMCiphertext = append([]byte(nil), v...)
			b = b[m:]
		case fieldRespIDPub:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return r, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			r.IdentityPub = append([]byte(nil), v...)
			b = b[m:]
		case fieldRespIDSig:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return r, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			r.IdentitySig = append([]byte(nil), v...)
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return r, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return r, nil
}

func EncodeChatMessage(m ChatMessage) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldMsgSender, protowire.BytesType)
	b = protowire.AppendString(b, m.SenderID)
	b = protowire.AppendTag(b, fieldMsgTimestamp, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.TimestampUnix))
	b = protowire.AppendTag(b, fieldMsgNonce, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Nonce)
	b = protowire.AppendTag(b, fieldMsgContent, protowire.BytesType)
	b = protowire.AppendBytes(b, m.EncryptedContent)
	return b
}

func DecodeChatMessage(b []byte) (ChatMessage, error) {
	var cm ChatMessage
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return cm, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldMsgSender:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return cm, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			cm.SenderID = string(v)
			b = b[m:]
		case fieldMsgTimestamp:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return cm, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			cm.TimestampUnix = int64(v)
			b = b[m:]
		case fieldMsgNonce:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return cm, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			cm.Nonce = append([]byte(nil), v...)
			b = b[m:]
		case fieldMsgContent:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return cm, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			cm.EncryptedContent = append([]byte(nil), v...)
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return cm, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return cm, nil
}

func EncodeEnvelope(e Envelope) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldEnvVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, e.Version)
	b = protowire.AppendTag(b, fieldEnvTo, protowire.BytesType)
	b = protowire.AppendString(b, e.ToUsername)
	b = protowire.AppendTag(b, fieldEnvTimestamp, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.ClientTimestamp))
	b = protowire.AppendTag(b, fieldEnvPayload, protowire.BytesType)
	b = protowire.AppendBytes(b, e.PayloadE2E)
	return b
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	var e Envelope
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return e, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldEnvVersion:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return e, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			e.Version = v
			b = b[m:]
		case fieldEnvTo:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return e, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			e.ToUsername = string(v)
			b = b[m:]
		case fieldEnvTimestamp:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return e, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			e.ClientTimestamp = int64(v)
			b = b[m:]
		case fieldEnvPayload:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return e, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			e.PayloadE2E = append([]byte(nil), v...)
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return e, e2eeerr.New(e2eeerr.Parse, op, protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return e, nil
}
