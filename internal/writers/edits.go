package writers

import (
	"encoding/json"
	"io"

	"dualretract/internal/engine"
	"dualretract/pkg/api"
)

// ToAPIEdit converts an engine edit to the v1 wire type.
func ToAPIEdit(source string, e engine.Edit) api.EditV1 {
	return api.EditV1{
		Source: source,
		Index:  e.Index,
		Kind:   string(e.Kind),
		Before: e.Before,
		After:  e.After,
	}
}

// ToAPISummary converts run stats to the v1 wire type.
func ToAPISummary(source, runID string, s engine.Stats) api.SummaryV1 {
	return api.SummaryV1{
		Source:         source,
		RunID:          runID,
		LinesIn:        s.LinesIn,
		LinesOut:       s.LinesOut,
		Toolchanges:    s.Toolchanges,
		PurgeSkipped:   s.PurgeSkipped,
		SnortsPatched:  s.SnortsPatched,
		SquirtsPatched: s.SquirtsPatched,
		PrimeBlocks:    s.PrimeBlocks,
	}
}

// StartJSONLWriter streams each value as one JSON line.
func StartJSONLWriter(out io.Writer, bufSize int) (chan<- any, <-chan error) {
	return start[any](out, bufSize, func(w io.Writer) func(any) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode
	})
}

// WriteJSON writes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return quiet(enc.Encode(v))
}
