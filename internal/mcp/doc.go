// Package mcp defines the canonical MCP server registration that the
// workspace CLI writes into coding-agent client stores.
//
// The [Server] type is client-agnostic. The packages under
// internal/platform translate it to and from each client's native format
// (Claude Code and Gemini CLI JSON, Codex TOML).
package mcp
