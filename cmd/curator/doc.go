// Package main hosts the curator CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into scans,
// organize runs, transaction log rollbacks, and index queries. It centralizes
// configuration resolution, structured logging setup, and cross-process
// locking so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
