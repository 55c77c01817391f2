package pinstore_test

import (
	"path/filepath"
	"testing"

	"ciphera/internal/e2eeerr"
	"ciphera/internal/pinstore"
)

func TestCheckAndPin_FirstConnectionPins(t *testing.T) {
	s := pinstore.Open(filepath.Join(t.TempDir(), "pins.txt"))
	key := pinstore.Key("relay.example:8443", "lobby")

	first, err := s.CheckAndPin(key, "aabb")
	if err != nil {
		t.Fatalf("CheckAndPin: %v", err)
	}
	if !first {
		t.Fatal("want firstPin=true on first connection")
	}

	fp, ok, err := s.Lookup(key)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok || fp != "aabb" {
		t.Fatalf("got (%q, %v), want (\"aabb\", true)", fp, ok)
	}
}

func TestCheckAndPin_MatchingFingerprintIsSilent(t *testing.T) {
	s := pinstore.Open(filepath.Join(t.TempDir(), "pins.txt"))
	key := pinstore.Key("relay.example:8443", "lobby")

	if _, err := s.CheckAndPin(key, "aabb"); err != nil {
		t.Fatalf("first CheckAndPin: %v", err)
	}
	first, err := s.CheckAndPin(key, "aabb")
	if err != nil {
		t.Fatalf("second CheckAndPin: %v", err)
	}
	if first {
		t.Fatal("want firstPin=false on repeat connection with matching fingerprint")
	}
}

func TestCheckAndPin_MismatchAborts(t *testing.T) {
	s := pinstore.Open(filepath.Join(t.TempDir(), "pins.txt"))
	key := pinstore.Key("relay.example:8443", "lobby")

	if _, err := s.CheckAndPin(key, "aabb"); err != nil {
		t.Fatalf("first CheckAndPin: %v", err)
	}
	_, err := s.CheckAndPin(key, "ccdd")
	if err == nil {
		t.Fatal("want PinMismatch error, got nil")
	}
	if !e2eeerr.Is(err, e2eeerr.PinMismatch) {
		t.Fatalf("want PinMismatch kind, got %v", err)
	}
}
