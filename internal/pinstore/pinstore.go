// Package pinstore implements trust-on-first-use pinning of peer
// fingerprints, keyed by "<relay-host:port>#<room>", persisted as an
// append-only flat text file of "<key> <fingerprint>\n" lines.
package pinstore

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"ciphera/internal/domain"
	"ciphera/internal/e2eeerr"
)

const op = "pinstore"

// Store is a file-backed TOFU pin store. The whole file is re-read on every
// Lookup, matching the original CLI's "stat each time" pattern; lookups are
// infrequent (once per connection) so this keeps the store simple and
// always consistent with concurrent external edits.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store backed by path. The file need not exist yet; it is
// created on first Pin.
func Open(path string) *Store {
	return &Store{path: path}
}

// Key builds the pin-store key for a given relay host (including port, if
// any) and room name.
func Key(relayHost, room string) string {
	return relayHost + "#" + room
}

// Lookup returns the pinned fingerprint for key, if any.
func (s *Store) Lookup(key string) (domain.Fingerprint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, e2eeerr.New(e2eeerr.IdentityIO, op, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		k, fp, ok := splitPinLine(line)
		if ok && k == key {
			return domain.Fingerprint(fp), true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, e2eeerr.New(e2eeerr.IdentityIO, op, err)
	}
	return "", false, nil
}

// Pin appends a "<key> <fingerprint>\n" line. Callers are expected to have
// already checked Lookup and decided pinning is appropriate; Pin itself
// does not check for an existing, conflicting pin.
func (s *Store) Pin(key string, fp domain.Fingerprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return e2eeerr.New(e2eeerr.IdentityIO, op, err)
	}
	defer f.Close()

	if _, err := f.WriteString(key + " " + string(fp) + "\n"); err != nil {
		return e2eeerr.New(e2eeerr.IdentityIO, op, err)
	}
	return nil
}

func splitPinLine(line string) (key, fp string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

var _ domain.PinStore = (*Store)(nil)

// CheckAndPin applies the TOFU policy: if key is unpinned, pin peerFP and
// report firstPin=true; if key is already pinned, the pinned fingerprint
// must match peerFP exactly or the connection is aborted with a
// PinMismatch error.
func (s *Store) CheckAndPin(key string, peerFP domain.Fingerprint) (firstPin bool, err error) {
	pinned, ok, err := s.Lookup(key)
	if err != nil {
		return false, err
	}
	if !ok {
		if err := s.Pin(key, peerFP); err != nil {
			return false, err
		}
		return true, nil
	}
	if pinned != peerFP {
		return false, e2eeerr.New(e2eeerr.PinMismatch, op, errFingerprintChanged)
	}
	return false, nil
}
