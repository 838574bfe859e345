// Package config loads, normalizes, and validates restitch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. CLI flags override whatever the file
// provides. Always obtain settings through this package so downstream code
// receives sanitized absolute paths and validated values.
package config
