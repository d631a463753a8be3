// Package session manages the live games hosted by the server.
//
// The Manager is a registry keyed by session id. Each Session carries its
// own mutex: a caller locks the session, runs exactly one engine transition,
// optionally saves a snapshot, and unlocks. Games in different sessions run
// fully in parallel.
//
// Persistence is pluggable through the Persistence interface; the file
// implementation writes one JSON snapshot per session and is used to survive
// restarts.
package session
