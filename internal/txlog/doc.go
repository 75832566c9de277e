// Package txlog persists the transaction log each execution writes and
// replays it in reverse to undo a run. The JSON layout on disk is a
// compatibility contract: timestamp, dry_run, actions_count, and an ordered
// actions array of {type, from, to}.
package txlog
