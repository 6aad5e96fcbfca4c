package engine

import (
	"fmt"

	"go.uber.org/zap"

	"dualretract/internal/gcode"
)

// Config holds the machine's dualstrusion constants.
type Config struct {
	RetractDistance float64 // mm the parked extruder is pulled back
	SquirtReduce    float64 // mm taken off the slicer's prime move
	SquirtFeedrate  float64 // mm/min
	SnortFeedrate   float64 // mm/min

	Logger *zap.Logger // nil logs nothing
}

// Stats summarizes one run.
type Stats struct {
	LinesIn        int `json:"lines_in"`
	LinesOut       int `json:"lines_out"`
	Toolchanges    int `json:"toolchanges"`
	PurgeSkipped   int `json:"purge_skipped"`
	SnortsPatched  int `json:"snorts_patched"`
	SquirtsPatched int `json:"squirts_patched"`
	PrimeBlocks    int `json:"prime_blocks"`
}

// Result is the rewritten stream and what was done to it.
type Result struct {
	Lines []string
	Edits []Edit
	Stats Stats
}

type Engine struct {
	cfg Config
	log *zap.Logger
}

func New(c Config) *Engine {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: c, log: log}
}

// Run rewrites an in-memory slice of lines.
func Run(c Config, lines []string) (Result, error) {
	return New(c).Process(gcode.NewWindow(gcode.Lines(lines)))
}

// Process consumes w to the end. On error the partial output is dropped.
func (e *Engine) Process(w *gcode.Window) (Result, error) {
	r := &run{cfg: e.cfg, log: e.log, st: newState()}
	for w.Next() {
		if err := r.step(w.Triplet()); err != nil {
			return Result{}, fmt.Errorf("line %d: %w", r.stats.LinesIn, err)
		}
	}
	if err := w.Err(); err != nil {
		return Result{}, err
	}
	if err := r.finish(); err != nil {
		return Result{}, fmt.Errorf("end of stream: %w", err)
	}
	r.stats.LinesOut = r.buf.Len()
	return Result{Lines: r.buf.Lines(), Edits: r.buf.Edits(), Stats: r.stats}, nil
}

// run is the per-invocation state; an Engine may be reused across streams.
type run struct {
	cfg   Config
	log   *zap.Logger
	st    state
	buf   Buffer
	stats Stats
}

func (r *run) step(t gcode.Triplet) error {
	r.stats.LinesIn++

	if c := r.st.companion; c != noCompanion {
		r.st.companion = noCompanion
		m := r.buf.Append(t.Cur)
		if c == blankCompanion {
			return r.buf.Patch(PatchRequest{At: m, Line: gcode.Blank, Kind: EditCompanion})
		}
		return nil
	}

	r.buf.Append(t.Cur)
	c := gcode.Classify(t.Cur, t.Next)

	switch r.st.mode {
	case SeekingFirstLayer:
		if c.Kind == gcode.LayerStart {
			r.st.mode = Normal
			r.log.Debug("first layer found", zap.Int("line", r.stats.LinesIn))
		}
		return nil
	case SeekingSquirt:
		return r.seekSquirt(c)
	default:
		return r.normal(t, c)
	}
}

func (r *run) seekSquirt(c gcode.Class) error {
	if !c.IsSquirt() {
		return nil
	}
	axis, err := r.st.current.Axis()
	if err != nil {
		return err
	}
	r.st.mode = Normal
	line := gcode.Move(r.cfg.SquirtFeedrate, axis, c.Pos-r.cfg.SquirtReduce)
	if err := r.buf.Patch(PatchRequest{At: r.buf.Last(), Line: line, Kind: EditSquirt}); err != nil {
		return err
	}
	if c.SplitForm() {
		r.st.companion = blankCompanion
	}
	r.stats.SquirtsPatched++
	r.log.Debug("squirt patched", zap.Int("line", r.stats.LinesIn), zap.Float64("pos", c.Pos))
	return nil
}

func (r *run) normal(t gcode.Triplet, c gcode.Class) error {
	if c.IsSnort() {
		r.st.snort = &pendingSnort{at: r.buf.Last(), pos: c.Pos, twoLine: c.SplitForm()}
		if c.SplitForm() {
			r.st.companion = keepCompanion
		}
		r.log.Debug("snort recorded", zap.Int("line", r.stats.LinesIn), zap.Float64("pos", c.Pos))
		return nil
	}
	if c.Kind != gcode.Toolchange {
		return nil
	}

	tool := Tool(c.Tool)
	switch r.st.current {
	case NoTool:
		r.st.current = tool
		return nil
	case tool:
		return nil
	}
	if (t.HasPrev && gcode.IsPurge(t.Prev)) || gcode.IsPurge(t.Next) {
		// Toolchanges inside the purge structure leave the active tool as
		// it was and forget the one before it.
		r.st.last = NoTool
		r.stats.PurgeSkipped++
		r.log.Debug("toolchange in purge region ignored", zap.Int("line", r.stats.LinesIn), zap.Int("tool", int(tool)))
		return nil
	}
	if _, err := tool.Axis(); err != nil {
		return err
	}

	r.st.last, r.st.current = r.st.current, tool
	r.stats.Toolchanges++
	r.log.Debug("significant toolchange",
		zap.Int("line", r.stats.LinesIn),
		zap.Int("from", int(r.st.last)),
		zap.Int("to", int(r.st.current)))

	if !r.st.bootstrapped {
		r.st.bootstrapped = true
		if err := r.prime(r.st.last, r.st.current); err != nil {
			return err
		}
	}
	if err := r.confirmSnort(); err != nil {
		return err
	}
	r.st.mode = SeekingSquirt
	return nil
}

// confirmSnort rewrites the pending retract now that a toolchange followed it.
func (r *run) confirmSnort() error {
	s := r.st.snort
	if s == nil {
		return nil
	}
	r.st.snort = nil

	axis, err := r.st.last.Axis()
	if err != nil {
		return err
	}
	line := gcode.Move(r.cfg.SnortFeedrate, axis, s.pos-r.cfg.RetractDistance)
	if err := r.buf.Patch(PatchRequest{At: s.at, Line: line, Kind: EditSnort}); err != nil {
		return err
	}
	if s.twoLine {
		if err := r.buf.Patch(PatchRequest{At: s.at.Next(), Line: gcode.Blank, Kind: EditCompanion}); err != nil {
			return err
		}
	}
	r.stats.SnortsPatched++
	r.log.Debug("snort patched", zap.Int("index", s.at.Index()), zap.Float64("pos", s.pos))
	return nil
}

// prime pushes the retract distance back through tool, then reselects resume.
func (r *run) prime(tool, resume Tool) error {
	axis, err := tool.Axis()
	if err != nil {
		return err
	}
	r.buf.Insert(EditPrime, gcode.PrimeBlock(int(tool), axis, r.cfg.SquirtFeedrate, r.cfg.RetractDistance, int(resume))...)
	r.stats.PrimeBlocks++
	return nil
}

// finish primes the extruder left parked when the stream ends.
func (r *run) finish() error {
	inactive, err := r.st.current.Complement()
	if err != nil {
		return err
	}
	return r.prime(inactive, r.st.current)
}
