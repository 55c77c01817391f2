// Package commands defines the ciphera CLI.
//
// Commands
//
//   - init         Generate an identity keypair and store it, encrypted, on disk
//   - fingerprint  Print the local identity's fingerprint
//   - listen       Accept one TCP connection and run the server handshake role
//   - connect      Connect directly or via a relay room and run the handshake
//
// # Implementation
//
// The root command resolves the identity/pin-store home directory before any
// subcommand runs. Each command loads its own identity and wires its own
// transport, handshake, and session rather than sharing a long-lived
// dependency graph, since every invocation is a single handshake plus chat
// loop rather than a long-running service.
package commands
