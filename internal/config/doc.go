// Package config loads the workspace CLI's own configuration using Viper.
//
// The configuration is distinct from the client stores the CLI edits. It is
// read from config.yaml in the current directory or in
// $XDG_CONFIG_HOME/workspace, and every key can be overridden with a
// WORKSPACE_ prefixed environment variable (dots become underscores):
//
//	server:
//	  name: workspace
//	  command: uv
//	  args: ["--directory", "{path}", "run", "-m", "wa.mcp"]
//	  env:
//	    - WA_LOG_LEVEL=debug
//	backup:
//	  enabled: true
//	  retention: 5
//	  dir: ~/.local/share/workspace/backups
//	lock_timeout: 5s
//	lock_dir: ~/.local/state/workspace/locks
//
// "{path}" in server args and env values is replaced with the absolute
// project path at install time. Env entries are KEY=VALUE strings rather than
// a map because Viper lower-cases map keys.
//
// The target client is never configured here; it always comes from the
// --client flag so that omitting the flag means claude-code.
//
// Missing files fall back to defaults; [Load] validates what it returns.
package config
