// Package engine implements the authoritative rules of a turn-based tactical
// wargame on a rectangular grid: movement, ranged and melee combat with
// counterattacks, building capture, per-turn income and factory production,
// turn rotation and win detection.
//
// Core Types:
//   - MapTemplate: immutable map definition (terrain, buildings, starting
//     units), validated once at registration
//   - Game: full mutable state of one match, instantiated from a template
//   - Unit, Building, PlayerSlot: the per-match records a Game is made of
//   - Event: ordered record entries emitted by every state transition
//
// Every mutating operation validates the whole request against the current
// state before touching it; a rejected call leaves the Game unchanged.
// Failures are sentinel errors (ErrInvalidPath, ErrNotYourTurn, ...) grouped
// into transport-facing classes by ClassOf.
//
// Randomness:
//
// Combat never reads a clock or RNG. Rolls derive from an injected
// EntropySource combined with the session seed and the identifiers of the
// exchange, so a fixed source replays a battle exactly. Production wiring
// uses DelayedEntropy; tests use FixedEntropy.
//
// Concurrency:
//
// A Game is not safe for concurrent use. The session layer serializes all
// calls against one Game; distinct Games are independent.
package engine
