// Package entity asks an OpenAI-compatible local inference server which
// organization a document belongs to, for optional per-entity folder
// grouping. The service is best-effort and disabled by default.
package entity
