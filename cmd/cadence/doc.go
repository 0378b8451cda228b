// Package main hosts the cadence CLI entrypoint and command graph.
//
// Each invocation loads configuration, opens the workspace from its stored
// snapshot, runs one operation, and waits for the snapshot write before
// exiting. Commands that touch channels, projects or scenes require the
// operator credentials through --user/--password or CADENCE_USER and
// CADENCE_PASSWORD; configuration and session commands do not.
package main
