// Package claude provides the Claude Code MCP store and agent file handling.
//
// User-scope servers live under the "mcpServers" key of ~/.claude.json
// (or $CLAUDE_CONFIG_DIR/.claude.json). Project-scope servers live in
// <project>/.mcp.json. Both files are shared with Claude Code itself, so
// every key other than the managed entry is preserved.
//
// Subagents are markdown files with YAML frontmatter under
// <project>/.claude/agents; see [AgentManager].
package claude
