// Package config loads, normalizes, and validates Cadence configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CADENCE_DATA_DIR environment
// override. The Config type centralizes the storage, view, and logging knobs
// the workspace and CLI need so every caller sees one sanitized view of them.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, a canonical storage backend name, and clear validation
// errors.
package config
