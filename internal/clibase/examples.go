// internal/clibase/examples.go
package clibase

import (
	"fmt"
	"io"
)

// PrintExamples prints a small quickstart header and body, followed by a
// one-line tip to discover full help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}

// Quickstart is the example body for the dualretract tool.
func Quickstart(out io.Writer) {
	_, _ = fmt.Fprint(out, `  # Rewrite one sliced file for a Replicator 2X
  dualretract process -p Replicator2X part.gcode -o part.dual.gcode

  # Several files at once; each writes <name>.dual.gcode beside it
  dualretract process -p Replicator2X 'slices/*.gcode'

  # Inspect what would change, as JSON lines
  dualretract process -p Replicator2X --format jsonl part.gcode

  # Check a file for malformed lines
  dualretract lint part.gcode

  # Post-process everything the slicer drops into a folder
  dualretract watch -p Replicator2X slices/
`)
}
