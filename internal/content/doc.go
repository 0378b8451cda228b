// Package content owns the canonical channel, video project, and scene
// collections.
//
// The Store enforces the hierarchy invariants: a project always references an
// existing channel, deleting a channel cascades to its projects, scene ids are
// unique within their project (never globally), and scene order is the
// timeline order. Updates apply partial patches; a patch that carries a scene
// sequence replaces the whole sequence. Lookups and deletes of missing ids are
// no-ops rather than errors, while attaching to a missing parent fails with a
// ReferenceError.
//
// Readers always receive deep copies; callers never hold references into the
// store's collections.
package content
