package identitystore

import "errors"

var (
	errBadMagic   = errors.New("identitystore: bad magic")
	errBadVersion = errors.New("identitystore: unsupported version")
	errCorrupt    = errors.New("identitystore: corrupt file")
)
