// Package workspace is the single owned state object of a cadence process.
//
// A Workspace composes the content store, the durable snapshot writer, the
// session gate, listing filters and pagination, and the current selections.
// Every store mutation made through it submits a fresh snapshot of the
// persisted projection; transient state (session, selections, filters) is
// never written and starts from defaults on every Open.
package workspace
