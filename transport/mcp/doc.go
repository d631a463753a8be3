// Package mcp exposes the game as MCP tools for AI agents.
//
// The client is deliberately thin: every tool call becomes an HTTP request
// against the REST API, so the two transports can never disagree on rules
// or state. Tool results are rendered as text, including an ASCII board,
// because MCP consumers read rather than parse.
package mcp
