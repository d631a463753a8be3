// Package api serves the game over HTTP.
//
// Endpoints:
//
//	POST /api/templates              register a map template
//	GET  /api/templates              list templates
//	GET  /api/templates/{id}         full template (terrain, buildings, units)
//	POST /api/sessions               create a session from a template
//	GET  /api/sessions               list sessions
//	GET  /api/sessions/{id}          full game state
//	GET  /api/sessions/{id}/state    alias of the above
//	POST /api/sessions/{id}/join     take a slot
//	POST /api/sessions/{id}/move     move a unit along a path
//	POST /api/sessions/{id}/attack   resolve an attack
//	POST /api/sessions/{id}/capture  tick a capture
//	POST /api/sessions/{id}/build    queue a unit at a factory
//	POST /api/sessions/{id}/end-turn pass the turn
//	POST /api/sessions/{id}/resign   concede
//	GET  /ws?session={id}            subscribe to transition pushes
//	GET  /healthz                    liveness probe
//
// The caller's identity arrives in the X-Player-Address header, set by the
// authenticating proxy in front of the server. Failures map onto HTTP
// statuses by class: 400 structural, 403 authorization, 409 state,
// 422 rule violation, 404 unknown ids.
package api
