package handshake_test

import (
	"bytes"
	"context"
	"testing"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/handshake"
	"ciphera/internal/transport"
)

func makeIdentity(t *testing.T) domain.Identity {
	t.Helper()
	seed, pub, err := crypto.GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	return domain.Identity{
		Seed:        seed,
		Public:      pub,
		Fingerprint: crypto.FingerprintOf(pub),
	}
}

func TestHandshake_EstablishesMatchingSessionKeys(t *testing.T) {
	clientID := makeIdentity(t)
	serverID := makeIdentity(t)

	clientConn, serverConn := transport.NewPipePair()
	ctx := context.Background()

	type serverOut struct {
		res handshake.Result
		err error
	}
	serverDone := make(chan serverOut, 1)
	go func() {
		res, err := handshake.RunServer(ctx, serverConn, serverID)
		serverDone <- serverOut{res, err}
	}()

	clientRes, err := handshake.RunClient(ctx, clientConn, clientID)
	if err != nil {
		t.Fatalf("RunClient: %v", err)
	}
	sOut := <-serverDone
	if sOut.err != nil {
		t.Fatalf("RunServer: %v", sOut.err)
	}

	if clientRes.PeerFingerprint != serverID.Fingerprint {
		t.Fatalf("client saw peer fingerprint %s, want %s", clientRes.PeerFingerprint, serverID.Fingerprint)
	}
	if sOut.res.PeerFingerprint != clientID.Fingerprint {
		t.Fatalf("server saw peer fingerprint %s, want %s", sOut.res.PeerFingerprint, clientID.Fingerprint)
	}
	if clientRes.Role != domain.RoleClient || clientRes.State != domain.StateReady {
		t.Fatalf("client role/state = %s/%s, want client/ready", clientRes.Role, clientRes.State)
	}
	if sOut.res.Role != domain.RoleServer || sOut.res.State != domain.StateReady {
		t.Fatalf("server role/state = %s/%s, want server/ready", sOut.res.Role, sOut.res.State)
	}

	frame, err := clientRes.Session.EncryptApplication([]byte("ping"), "client", "server")
	if err != nil {
		t.Fatalf("client EncryptApplication: %v", err)
	}
	pt, err := sOut.res.Session.DecryptApplication(frame)
	if err != nil {
		t.Fatalf("server DecryptApplication: %v", err)
	}
	if !bytes.Equal(pt, []byte("ping")) {
		t.Fatalf("got %q, want %q", pt, "ping")
	}
}

func TestHandshake_RejectsForgedClientSignature(t *testing.T) {
	clientID := makeIdentity(t)
	impostorID := makeIdentity(t) // signs with the wrong key but claims clientID's pub
	serverID := makeIdentity(t)

	clientConn, serverConn := transport.NewPipePair()
	ctx := context.Background()

	forged := domain.Identity{
		Seed:        impostorID.Seed,
		Public:      clientID.Public,
		Fingerprint: clientID.Fingerprint,
	}

	type serverOut struct {
		res handshake.Result
		err error
	}
	serverDone := make(chan serverOut, 1)
	go func() {
		res, err := handshake.RunServer(ctx, serverConn, serverID)
		// RunServer sends nothing on failure; discarding the channel is the
		// caller's job, and closing it unblocks the client's RecvFrame.
		_ = serverConn.Close()
		serverDone <- serverOut{res, err}
	}()

	_, _ = handshake.RunClient(ctx, clientConn, forged)
	sOut := <-serverDone
	if sOut.err == nil {
		t.Fatal("want signature verification error on server side, got nil")
	}
	if sOut.res.State != domain.StateFailed {
		t.Fatalf("server state = %s, want failed", sOut.res.State)
	}
}
