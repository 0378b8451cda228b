// Package logging assembles structured slog loggers and formatting helpers used
// across Cadence packages.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so store, persistence, and CLI code
// tag log lines with the same channel, project, and scene keys. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
