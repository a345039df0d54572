// Package config loads, normalizes, and validates hermione configuration.
//
// It supplies defaults for the captioning backend, the network monitor and
// local storage, expands tilde paths, and reads an optional TOML file. The
// HERMIONE_BACKEND environment variable overrides the backend host when the
// file leaves it unset.
package config
