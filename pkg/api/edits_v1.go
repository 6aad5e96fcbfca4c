// pkg/api/edits_v1.go
package api

// EditV1 is the stable JSONL schema for one output-buffer mutation.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type EditV1 struct {
	Source string `json:"source,omitempty"` // input path, "-" for stdin
	Index  int    `json:"index"`            // 0-based output line
	Kind   string `json:"kind"`             // "snort" | "squirt" | "companion" | "prime"
	Before string `json:"before,omitempty"` // empty for inserted lines
	After  string `json:"after"`
}

// SummaryV1 closes an edit report with the run totals.
type SummaryV1 struct {
	Source         string `json:"source,omitempty"`
	RunID          string `json:"run_id,omitempty"`
	LinesIn        int    `json:"lines_in"`
	LinesOut       int    `json:"lines_out"`
	Toolchanges    int    `json:"toolchanges"`
	PurgeSkipped   int    `json:"purge_skipped"`
	SnortsPatched  int    `json:"snorts_patched"`
	SquirtsPatched int    `json:"squirts_patched"`
	PrimeBlocks    int    `json:"prime_blocks"`
}
