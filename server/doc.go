// Package server exposes a session over HTTP and a websocket stream.
//
// Routes:
//
//	GET  /board          current Snapshot as JSON
//	POST /select/:index  select a destination, reply with the new Snapshot
//	POST /reset          reset the session, reply with the new Snapshot
//	GET  /ws             stream of Events; accepts Command messages
//
// Every change published by the session is broadcast to all websocket
// clients. A client that cannot keep up loses events rather than stalling
// the session.
package server
