// Package fileutil provides copy and move primitives used by the executor
// and rollback paths, including verified cross-device moves.
package fileutil
