// Package views derives read-only projections from store data: aggregate
// project status and progress, share links, channel filtering, and
// pagination. Every function is pure and recomputed on each call.
package views
