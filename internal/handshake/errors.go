package handshake

import "errors"

var (
	errBadIdentityLen  = errors.New("handshake: identity public key has the wrong length")
	errSigVerifyFailed = errors.New("handshake: peer signature verification failed")
)
