// Package classify combines signature detection and metadata extraction into
// a per-file ContentInfo: the true container type, whether the extension
// lies, and a metadata-derived name suggestion.
package classify
