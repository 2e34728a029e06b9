// Package config loads, validates, and normalizes the TOML configuration for
// ytscribe. Defaults are always applied first, so a missing config file is a
// valid configuration.
package config
