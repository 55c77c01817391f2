// Package handshake drives the two-message, mutually authenticated
// handshake: HandshakeHello from the client, HandshakeResponse from the
// server, each signed over a domain-separated transcript with the sender's
// long-lived Ed25519 identity.
package handshake

import (
	"context"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/e2eeerr"
	"ciphera/internal/session"
	"ciphera/internal/wire"
)

const (
	op              = "handshake"
	protocolVersion = uint64(1)

	clientSigPrefix = "E2EE-HANDSHAKE-v1|client|"
	serverSigPrefix = "E2EE-HANDSHAKE-v1|server|"
)

// Result carries the outcome of a completed handshake.
type Result struct {
	Role            domain.Role
	State           domain.HandshakeState
	Session         *session.Session
	PeerPublicKey   domain.Ed25519Public
	PeerFingerprint domain.Fingerprint
}

// RunClient performs the client side of the handshake: generate a KEM
// keypair, sign it, send HandshakeHello, verify the server's
// HandshakeResponse, and derive the session key. Result.State is Ready on
// success and Failed on any error return.
func RunClient(ctx context.Context, fr domain.FrameReadWriter, self domain.Identity) (Result, error) {
	res := Result{Role: domain.RoleClient, State: domain.StateIdle}

	kemPub, kemPriv, err := crypto.KEMKeypair()
	if err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Crypto, op, err)
	}

	sigMsg := append([]byte(clientSigPrefix), kemPub...)
	sig := crypto.SignEd25519(self.Seed, sigMsg)

	hello := wire.HandshakeHello{
		Version:      protocolVersion,
		KEMPublicKey: kemPub,
		IdentityPub:  self.Public[:],
		IdentitySig:  sig,
	}
	if err := fr.SendFrame(ctx, wire.EncodeHello(hello)); err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Transport, op, err)
	}
	res.State = domain.StateAwaitingPeerMessage

	respFrame, err := fr.RecvFrame(ctx)
	if err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Transport, op, err)
	}
	resp, err := wire.DecodeResponse(respFrame)
	if err != nil {
		res.State = domain.StateFailed
		return res, err
	}
	if len(resp.IdentityPub) != domain.Ed25519PublicSize {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Parse, op, errBadIdentityLen)
	}
	serverPub := domain.MustEd25519Public(resp.IdentityPub)

	serverSigMsg := append(append([]byte(serverSigPrefix), resp.KEMCiphertext...), kemPub...)
	if !crypto.VerifyEd25519(serverPub, serverSigMsg, resp.IdentitySig) {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.SignatureVerify, op, errSigVerifyFailed)
	}
	res.State = domain.StateDeriving

	sharedSecret, err := crypto.KEMDecapsulate(kemPriv, resp.KEMCiphertext)
	if err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Crypto, op, err)
	}
	key, err := crypto.DeriveSessionKey(sharedSecret)
	if err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Crypto, op, err)
	}

	res.State = domain.StateReady
	res.Session = session.New(key)
	res.PeerPublicKey = serverPub
	res.PeerFingerprint = crypto.FingerprintOf(serverPub)
	return res, nil
}

// RunServer performs the server side of the handshake: receive
// HandshakeHello, verify the client's signature, encapsulate to the
// client's KEM public key, sign and send HandshakeResponse, and derive the
// session key. Result.State is Ready on success and Failed on any error
// return.
func RunServer(ctx context.Context, fr domain.FrameReadWriter, self domain.Identity) (Result, error) {
	res := Result{Role: domain.RoleServer, State: domain.StateAwaitingPeerMessage}

	helloFrame, err := fr.RecvFrame(ctx)
	if err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Transport, op, err)
	}
	hello, err := wire.DecodeHello(helloFrame)
	if err != nil {
		res.State = domain.StateFailed
		return res, err
	}
	if len(hello.IdentityPub) != domain.Ed25519PublicSize {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Parse, op, errBadIdentityLen)
	}
	clientPub := domain.MustEd25519Public(hello.IdentityPub)

	clientSigMsg := append([]byte(clientSigPrefix), hello.KEMPublicKey...)
	if !crypto.VerifyEd25519(clientPub, clientSigMsg, hello.IdentitySig) {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.SignatureVerify, op, errSigVerifyFailed)
	}
	res.State = domain.StateDeriving

	ciphertext, sharedSecret, err := crypto.KEMEncapsulate(hello.KEMPublicKey)
	if err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Crypto, op, err)
	}

	serverSigMsg := append(append([]byte(serverSigPrefix), ciphertext...), hello.KEMPublicKey...)
	sig := crypto.SignEd25519(self.Seed, serverSigMsg)

	resp := wire.HandshakeResponse{
		Version:       protocolVersion,
		KEMCiphertext: ciphertext,
		IdentityPub:   self.Public[:],
		IdentitySig:   sig,
	}
	if err := fr.SendFrame(ctx, wire.EncodeResponse(resp)); err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Transport, op, err)
	}

	key, err := crypto.DeriveSessionKey(sharedSecret)
	if err != nil {
		res.State = domain.StateFailed
		return res, e2eeerr.New(e2eeerr.Crypto, op, err)
	}

	res.State = domain.StateReady
	res.Session = session.New(key)
	res.PeerPublicKey = clientPub
	res.PeerFingerprint = crypto.FingerprintOf(clientPub)
	return res, nil
}
