package engine

// Mode is the rewrite's processing mode. Exactly one is active at a time.
type Mode int

const (
	// SeekingFirstLayer passes everything through until the first layer marker.
	SeekingFirstLayer Mode = iota
	// Normal records snorts and watches for significant toolchanges.
	Normal
	// SeekingSquirt follows a significant toolchange until its prime move.
	SeekingSquirt
)

func (m Mode) String() string {
	switch m {
	case SeekingFirstLayer:
		return "seeking-first-layer"
	case Normal:
		return "normal"
	case SeekingSquirt:
		return "seeking-squirt"
	}
	return "unknown"
}

// pendingSnort is a retract not yet confirmed by a toolchange.
type pendingSnort struct {
	at      Mark
	pos     float64
	twoLine bool
}

// companion says what to do with the second line of a two-line move.
type companion int

const (
	noCompanion    companion = iota
	keepCompanion            // snort: emit as is; blanked if the snort is confirmed
	blankCompanion           // squirt: emit blank, the squirt line carries the position
)

type state struct {
	mode    Mode
	current Tool
	last    Tool

	snort     *pendingSnort
	companion companion

	// bootstrapped is set once the first significant toolchange has primed
	// the tool that never saw a snort.
	bootstrapped bool
}

func newState() state {
	return state{mode: SeekingFirstLayer, current: NoTool, last: NoTool}
}
