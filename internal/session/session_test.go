package session_test

import (
	"bytes"
	"testing"

	"ciphera/internal/domain"
	"ciphera/internal/e2eeerr"
	"ciphera/internal/session"
)

func TestEncryptDecrypt_RoundTrips(t *testing.T) {
	var key [domain.SessionKeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	s := session.New(key)

	frame, err := s.EncryptApplication([]byte("hello"), "alice", "bob")
	if err != nil {
		t.Fatalf("EncryptApplication: %v", err)
	}
	pt, err := s.DecryptApplication(frame)
	if err != nil {
		t.Fatalf("DecryptApplication: %v", err)
	}
	if !bytes.Equal(pt, []byte("hello")) {
		t.Fatalf("got %q, want %q", pt, "hello")
	}
}

func TestDecrypt_RejectsTamperedCiphertext(t *testing.T) {
	var key [domain.SessionKeySize]byte
	s := session.New(key)

	frame, err := s.EncryptApplication([]byte("hello"), "alice", "bob")
	if err != nil {
		t.Fatalf("EncryptApplication: %v", err)
	}
	frame[len(frame)-1] ^= 0xFF

	if _, err := s.DecryptApplication(frame); err == nil {
		t.Fatal("want tag verification error, got nil")
	}
}

func TestDecrypt_RejectsGarbageFrameButStaysUsable(t *testing.T) {
	var key [domain.SessionKeySize]byte
	s := session.New(key)

	if _, err := s.DecryptApplication([]byte{0xff, 0x00, 0x01, 0x02}); err == nil {
		t.Fatal("want parse error for garbage frame, got nil")
	} else if !e2eeerr.Is(err, e2eeerr.Parse) {
		t.Fatalf("want Parse kind, got %v", err)
	}

	frame, err := s.EncryptApplication([]byte("still works"), "alice", "bob")
	if err != nil {
		t.Fatalf("EncryptApplication after garbage frame: %v", err)
	}
	pt, err := s.DecryptApplication(frame)
	if err != nil {
		t.Fatalf("DecryptApplication after garbage frame: %v", err)
	}
	if !bytes.Equal(pt, []byte("still works")) {
		t.Fatalf("got %q, want %q", pt, "still works")
	}
}

func TestClose_ZeroesKeyAndRejectsFurtherUse(t *testing.T) {
	var key [domain.SessionKeySize]byte
	for i := range key {
		key[i] = 0x42
	}
	s := session.New(key)
	s.Close()

	if _, err := s.EncryptApplication([]byte("x"), "alice", "bob"); err == nil {
		t.Fatal("want error after Close, got nil")
	}
}
