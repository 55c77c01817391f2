package session

import "errors"

var errNotReady = errors.New("session: key not established")
