// Package logging centralizes slog logger construction and the standardized
// attribute helpers used across curator components.
package logging
