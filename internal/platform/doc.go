// Package platform defines the client kinds the workspace CLI can register
// with and the [Store] contract each client implements.
//
// A Store owns exactly one configuration file: the client's user-level
// settings or a project-level file under a project root. Stores only touch
// the server entry they are asked about and preserve every other key.
//
// Most clients keep their servers as a map under one top-level key of a JSON
// or TOML document; [FileStore] implements that shape once and the client
// packages (claude, codex, gemini) configure it with their paths and native
// entry layout.
package platform
