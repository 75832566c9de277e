// Package signature identifies file formats from their leading bytes.
//
// Detection is table-driven: an ordered list of magic-byte signatures is
// checked in order and the first byte-exact match wins, with follow-up
// disambiguation for container formats that share a prefix (RIFF, ISO base
// media ftyp boxes, ZIP-based documents). Detection is best-effort by
// design and never returns an error; unreadable or unrecognized input
// simply yields no match.
package signature
