// Package organize plans and executes the reorganization of a file batch.
//
// Planning is a pure function over in-memory descriptors: destinations are
// resolved and deduplicated against a simulated view of each target
// directory, never the real filesystem. Only the executor mutates disk, and
// everything it does is captured in a transaction log for rollback.
package organize
