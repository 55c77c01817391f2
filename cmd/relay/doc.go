// Package main runs the WebSocket relay used to connect two handshake
// clients that can't otherwise reach each other directly.
//
// HTTP API
//
//	GET /health
//	    Returns "ok" with status 200.
//
//	GET /ws?room=<name>
//	    Upgrades to a WebSocket connection and joins <name> (default
//	    "default" if omitted). Every binary frame received from a
//	    connection in a room is rebroadcast verbatim to every other live
//	    connection in that room.
//
// Behaviour
//
//   - All state (room membership) is held in memory and lost on process
//     exit.
//   - The relay never inspects or mutates frame contents; it is a dumb
//     pipe between identity-authenticated handshake participants.
//   - A structured access log records method, path, remote, status and
//     duration for each HTTP request.
//   - The default listen address is :8080.
package main
