package writers

import (
	"fmt"
	"io"
	"sort"

	"dualretract/internal/engine"
)

// Document is one finished run, ready to serialize.
type Document struct {
	Source string // input path, "-" for stdin
	RunID  string
	Result engine.Result
}

// WriteFunc serializes a Document.
type WriteFunc func(w io.Writer, doc Document) error

// Writer registry (format → handler). Last registration wins.
var registry = map[string]WriteFunc{}

func Register(format string, fn WriteFunc) { registry[format] = fn }

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches doc to the writer registered for format.
func Write(format string, w io.Writer, doc Document) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, doc)
}

func init() {
	Register("gcode", writeGcode)
	Register("jsonl", writeEdits)
}

func writeGcode(w io.Writer, doc Document) error {
	in, done := StartLineWriter(w, 256)
	for _, l := range doc.Result.Lines {
		in <- l
	}
	close(in)
	return <-done
}

// writeEdits emits one EditV1 per buffer mutation, then a SummaryV1.
func writeEdits(w io.Writer, doc Document) error {
	in, done := StartJSONLWriter(w, 64)
	for _, e := range doc.Result.Edits {
		in <- ToAPIEdit(doc.Source, e)
	}
	in <- ToAPISummary(doc.Source, doc.RunID, doc.Result.Stats)
	close(in)
	return <-done
}
