// Package websocket pushes game transitions to subscribed clients.
//
// One Hub serves the whole process. Clients subscribe to a single session
// over /ws and receive a Message per successful mutation: the emitted events
// plus the resulting game view. The channel is strictly one-way; clients
// that want to act go through the REST API.
package websocket
