package pinstore

import "errors"

var errFingerprintChanged = errors.New("pinstore: peer fingerprint changed since last connection")
