// Package importer turns user-supplied project definitions into payloads the
// content store accepts. JSON is the primary format; TOML documents with the
// same keys are accepted too.
package importer
