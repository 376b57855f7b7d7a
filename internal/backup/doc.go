// Package backup snapshots client configuration files before the workspace
// CLI modifies them.
//
// Each backup is a directory under the backup root named by client and a
// UTC timestamp:
//
//	<root>/<client>/<id>/
//	    manifest.json
//	    home/user/.claude.json
//
// The manifest records every file's original path, mode, and SHA-256 hash.
// Files are stored under their absolute path with the leading separator and
// any volume colon removed. After each backup the client's history is pruned
// to the configured retention count.
package backup
