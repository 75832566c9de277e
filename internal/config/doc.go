// Package config loads, normalizes, and validates curator's TOML
// configuration. Defaults come from the embedded sample; path fields are
// tilde-expanded and made absolute during load.
package config
