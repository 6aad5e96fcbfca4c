// Package gcode holds the line-level view of a slicer's gcode stream:
// classification of the handful of line shapes the retraction rewrite cares
// about, the instruction forms it synthesizes, a three-line sliding window
// over the stream, and the generic code/comment tokenizer used by lint.
//
// Nothing here fails on unrecognized input. A line that matches no shape is
// Plain and passes through untouched.
//
// Keep this package free of engine, app, cli, pipeline, and writers imports.
package gcode
