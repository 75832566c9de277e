// Package scanner walks a directory tree and turns each regular file into a
// descriptor for planning, classifying by extension or, with deep scan
// enabled, by the file's own bytes.
package scanner
