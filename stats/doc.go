// Package stats defines the write-only telemetry sink fed by the game
// service. The engine and service never depend on a recorder answering;
// recorders must not block.
package stats
