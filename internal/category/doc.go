// Package category defines the closed set of file categories used across
// signature detection, scanning, and organization planning.
package category
