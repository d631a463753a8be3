// Package service exposes the game engine as an application-facing API.
//
// GameService is the single write surface: transports (REST, MCP, the
// simulator) all mutate games through it and nothing else. Each call runs
// exactly one engine transition under the session lock, persists the
// resulting snapshot, and fans the emitted events out to the stats recorder.
//
// The service attributes but never authenticates: the caller identity on
// every mutating method is whatever the hosting transport extracted.
package service
