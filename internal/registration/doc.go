// Package registration installs and removes the workspace MCP server entry
// in a coding-agent client's configuration store.
//
// A [Dispatcher] resolves the client through a dispatch table built by
// [NewTable], serializes access to the target store with an advisory file
// lock, backs the store up before any write, and reports the outcome as a
// [Result]. Installing an identical entry twice and uninstalling an absent
// entry are both successful no-ops unless strict mode is enabled.
package registration
