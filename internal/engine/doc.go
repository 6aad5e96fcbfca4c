// Package engine contains the dual-extrusion retraction rewrite. It never
// imports app, writers, cli, profile, or pipeline; keep it domain-only.
//
// The engine walks the stream once through a gcode.Window. Retracts ("snorts")
// are remembered by buffer position and only rewritten when a later toolchange
// proves them significant, so every edit goes through Buffer.Patch against a
// Mark the buffer handed out itself.
//
// External outputs must not depend on the internal shape here; use pkg/api
// for the stable edit report schema.
package engine
