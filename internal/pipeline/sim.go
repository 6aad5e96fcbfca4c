// internal/pipeline/sim.go
package pipeline

import (
	"dualretract/internal/engine"
	"dualretract/internal/gcode"
)

// Rewriter is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Rewriter interface {
	Process(w *gcode.Window) (engine.Result, error)
}
