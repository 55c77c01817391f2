// Package identitystore loads and creates the password-protected identity
// file: an Ed25519 keypair whose private seed is encrypted at rest with a
// PBKDF2-derived AES-256-GCM key.
//
// On-disk layout (all multi-byte integers big-endian):
//
//	magic[8]    = "E2EEID01"
//	version     uint32 = 1
//	pbkdf2_iters uint32
//	salt_len    uint32 + salt
//	nonce_len   uint32 + nonce
//	pub_len     uint32 + pub
//	ct_len      uint32 + ciphertext||16-byte GCM tag
package identitystore

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
	"crypto/sha256"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
	"ciphera/internal/e2eeerr"
)

const (
	magic          = "E2EEID01"
	fileVersion    = uint32(1)
	pbkdf2Iters    = uint32(200000)
	saltLen        = 16
	maxSaltLen     = 1024
	maxCiphertext  = 4096
	op             = "identitystore"
)

// Create generates a fresh signing identity, encrypts its seed with a key
// derived from password, and writes it to path. It fails if path exists.
func Create(path, password string) (domain.Identity, error) {
	var id domain.Identity

	if _, err := os.Stat(path); err == nil {
		return id, e2eeerr.New(e2eeerr.IdentityIO, op, os.ErrExist)
	}

	seed, pub, err := crypto.GenerateEd25519()
	if err != nil {
		return id, e2eeerr.New(e2eeerr.Crypto, op, err)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return id, e2eeerr.New(e2eeerr.Crypto, op, err)
	}
	nonce, err := crypto.RandomNonce()
	if err != nil {
		return id, e2eeerr.New(e2eeerr.Crypto, op, err)
	}

	kek := deriveKEK(password, salt, pbkdf2Iters)
	ct, err := crypto.SealAESGCM(kek, nonce, seed[:])
	if err != nil {
		return id, e2eeerr.New(e2eeerr.Crypto, op, err)
	}

	if err := writeFile(path, pbkdf2Iters, salt, nonce, pub[:], ct); err != nil {
		return id, e2eeerr.New(e2eeerr.IdentityIO, op, err)
	}

	id.Public = pub
	id.Seed = seed
	id.Fingerprint = crypto.FingerprintOf(pub)
	return id, nil
}

// Load reads and decrypts the identity file at path with password.
func Load(path, password string) (domain.Identity, error) {
	var id domain.Identity

	b, err := os.ReadFile(path)
	if err != nil {
		return id, e2eeerr.New(e2eeerr.IdentityIO, op, err)
	}

	iters, salt, nonce, pub, ct, err := parseFile(b)
	if err != nil {
		return id, err
	}

	kek := deriveKEK(password, salt, iters)
	seedBytes, err := crypto.OpenAESGCM(kek, nonce, ct)
	if err != nil {
		return id, e2eeerr.New(e2eeerr.IdentityAuth, op, err)
	}

	var seed domain.Ed25519Seed
	copy(seed[:], seedBytes)
	crypto.Wipe(seedBytes)

	id.Public = domain.MustEd25519Public(pub)
	id.Seed = seed
	id.Fingerprint = crypto.FingerprintOf(id.Public)
	return id, nil
}

// LoadOrCreate loads the identity at path, creating it with password if it
// does not yet exist. created reports which branch was taken.
func LoadOrCreate(path, password string) (id domain.Identity, created bool, err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		id, err = Create(path, password)
		return id, true, err
	}
	id, err = Load(path, password)
	return id, false, err
}

func deriveKEK(password string, salt []byte, iters uint32) [domain.SessionKeySize]byte {
	key := pbkdf2.Key([]byte(password), salt, int(iters), domain.SessionKeySize, sha256.New)
	var out [domain.SessionKeySize]byte
	copy(out[:], key)
	crypto.Wipe(key)
	return out
}

func writeFile(path string, iters uint32, salt, nonce, pub, ct []byte) error {
	var buf bytes.Buffer
	buf.WriteString(magic)
	writeU32(&buf, fileVersion)
	writeU32(&buf, iters)
	writeU32(&buf, uint32(len(salt)))
	buf.Write(salt)
	writeU32(&buf, uint32(len(nonce)))
	buf.Write(nonce)
	writeU32(&buf, uint32(len(pub)))
	buf.Write(pub)
	writeU32(&buf, uint32(len(ct)))
	buf.Write(ct)

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func parseFile(b []byte) (iters uint32, salt, nonce, pub, ct []byte, err error) {
	r := bytes.NewReader(b)

	m := make([]byte, len(magic))
	if _, e := readExact(r, m); e != nil || string(m) != magic {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, errBadMagic)
	}

	version, e := readU32(r)
	if e != nil {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, e)
	}
	if version != fileVersion {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, errBadVersion)
	}

	iters, e = readU32(r)
	if e != nil {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, e)
	}

	saltLen, e := readU32(r)
	if e != nil || saltLen == 0 || saltLen > maxSaltLen {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, errCorrupt)
	}
	salt = make([]byte, saltLen)
	if _, e := readExact(r, salt); e != nil {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, e)
	}

	nonceLen, e := readU32(r)
	if e != nil || nonceLen != crypto.AEADNonceSize {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, errCorrupt)
	}
	nonce = make([]byte, nonceLen)
	if _, e := readExact(r, nonce); e != nil {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, e)
	}

	pubLen, e := readU32(r)
	if e != nil || pubLen != domain.Ed25519PublicSize {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, errCorrupt)
	}
	pub = make([]byte, pubLen)
	if _, e := readExact(r, pub); e != nil {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, e)
	}

	ctLen, e := readU32(r)
	if e != nil || ctLen < crypto.AEADTagSize || ctLen > maxCiphertext {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, errCorrupt)
	}
	ct = make([]byte, ctLen)
	if _, e := readExact(r, ct); e != nil {
		return 0, nil, nil, nil, nil, e2eeerr.New(e2eeerr.IdentityIO, op, e)
	}

	return iters, salt, nonce, pub, ct, nil
}

func readExact(r *bytes.Reader, b []byte) (int, error) {
	n := 0
	for n < len(b) {
		m, err := r.Read(b[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := readExact(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}
