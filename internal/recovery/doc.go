// Package recovery copies files out of a mounted snapshot tree.
//
// An Engine walks the source root, filters candidates by name and size,
// and copies every match on a bounded worker pool into a mirrored directory
// structure under the destination root. Per-file failures are recorded in the
// returned Report and never abort the run.
//
// Copies are written to a temporary sibling and renamed into place, so an
// interrupted run never leaves a truncated file under its final name.
package recovery
