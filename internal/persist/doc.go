// Package persist stores the durable projection of the workspace: channels,
// video projects and the view mode preference, under one namespace.
//
// Two backends are available. The file backend keeps a JSON document next
// to a lock file and replaces it atomically. The SQLite backend keeps one row
// per namespace. Writer sits in front of either and performs saves in the
// background, keeping only the newest pending snapshot.
package persist
