// Package cli implements the interactive SMHome shell: a small REPL that
// signs in against the shop API, browses the catalog and manages the
// user's cart and favorites. The bearer token lives only in memory.
package cli
