// Package index maintains the SQLite-backed file index and execution
// history used by the search and history commands.
package index
