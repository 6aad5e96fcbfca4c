// Package pipeline runs one gcode input through a Rewriter and hands the
// finished result to an output sink.
//
// The only contract to implement is Rewriter (Process). Output is written
// only after the whole stream was rewritten; a rejected input leaves no
// partial file behind.
package pipeline
