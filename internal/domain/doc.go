// Package domain holds the value types (Identity, Fingerprint, session and
// handshake state) and collaborator interfaces (FrameReadWriter, PinStore)
// shared by the crypto, handshake, session, transport, and pinstore
// packages, so the transport and pinstore packages and the protocol
// packages (crypto, session, handshake) do not import one another.
package domain
