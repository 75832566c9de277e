// Package naming converts arbitrary filenames into a consistent archival
// shape: lowercase ASCII stems, ISO dates, zero-padded versions, and a
// fixed element order that differs between media and documents.
//
// Normalization is pure and idempotent. Callers decide when to apply it;
// the package never touches the filesystem.
package naming
