// Package lint runs the gcode tokenizer over a stream and reports lines it
// cannot parse. The rewrite itself never depends on these findings.
package lint

import (
	"context"
	"io"
	"strings"

	"dualretract/internal/gcode"
	"dualretract/internal/gcodeio"
)

// Stream checks every line of r and calls emit once per finding. It returns
// the number of findings; a non-nil error means the scan stopped early.
func Stream(ctx context.Context, r io.Reader, emit func(*gcode.LineError) error) (int, error) {
	sc := gcodeio.NewScanner(ctx, r)
	var n, line int
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if _, _, err := gcode.ParseLine(text); err != nil {
			n++
			if err := emit(&gcode.LineError{Line: line, Text: text, Err: err}); err != nil {
				return n, err
			}
		}
	}
	return n, sc.Err()
}

// File lints the gcode at path ("-" for stdin, gzip detected).
func File(ctx context.Context, path string, emit func(*gcode.LineError) error) (int, error) {
	rc, err := gcodeio.Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return Stream(ctx, rc, emit)
}
