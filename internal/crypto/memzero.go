package crypto

import "ciphera/internal/util/memzero"

// Wipe zeroes the provided buffer. This is best-effort and aims to
// reduce the chance of the compiler eliding the write.
func Wipe(b []byte) {
	memzero.Zero(b)
}
