// Package preflight verifies the environment before an organize run:
// directory permissions, free space on the target volume, and optional
// service reachability.
package preflight
