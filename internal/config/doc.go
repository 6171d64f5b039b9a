// Package config loads, normalizes, and validates the TOML configuration for
// scribe, providing defaults that work without any configuration file.
package config
