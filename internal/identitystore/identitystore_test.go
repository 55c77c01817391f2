package identitystore_test

import (
	"os"
	"path/filepath"
	"testing"

	"ciphera/internal/e2eeerr"
	"ciphera/internal/identitystore"
)

func TestCreateThenLoad_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.bin")

	created, err := identitystore.Create(path, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	loaded, err := identitystore.Load(path, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if created.Public != loaded.Public {
		t.Fatal("public key changed across save/load")
	}
	if created.Seed != loaded.Seed {
		t.Fatal("seed changed across save/load")
	}
	if created.Fingerprint != loaded.Fingerprint {
		t.Fatalf("fingerprint mismatch: %s vs %s", created.Fingerprint, loaded.Fingerprint)
	}
	if len(string(created.Fingerprint)) != 64 {
		t.Fatalf("want 64-char hex fingerprint, got %d chars", len(string(created.Fingerprint)))
	}
}

func TestLoad_WrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.bin")
	if _, err := identitystore.Create(path, "correct-password"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := identitystore.Load(path, "wrong-password")
	if err == nil {
		t.Fatal("want error for wrong password, got nil")
	}
	if !e2eeerr.Is(err, e2eeerr.IdentityAuth) {
		t.Fatalf("want IdentityAuth kind, got %v", err)
	}
}

func TestCreate_RefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.bin")
	if _, err := identitystore.Create(path, "pw"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := identitystore.Create(path, "pw"); err == nil {
		t.Fatal("want error creating over existing file, got nil")
	}
}

func TestLoad_RejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.bin")
	if err := writeJunk(path); err != nil {
		t.Fatalf("writeJunk: %v", err)
	}
	_, err := identitystore.Load(path, "pw")
	if err == nil {
		t.Fatal("want error for bad magic, got nil")
	}
	if !e2eeerr.Is(err, e2eeerr.IdentityIO) {
		t.Fatalf("want IdentityIO kind, got %v", err)
	}
}

func writeJunk(path string) error {
	return os.WriteFile(path, []byte("not an identity file at all"), 0o600)
}
