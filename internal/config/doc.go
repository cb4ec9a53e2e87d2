// Package config loads, normalizes, and validates the TOML configuration
// for the scribe daemon and CLI.
//
// Defaults live in defaults.go; Load layers an optional config file over
// them, expands ~ in every path field, and validates the result. The
// embedded sample_config.toml documents every setting.
package config
