package gcode

// LineSource yields lines one at a time. *bufio.Scanner satisfies it.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

// Triplet is the view of one line with its neighbours.
type Triplet struct {
	Prev    string
	HasPrev bool
	Cur     string
	Next    string // "" after the last line
}

// Window slides a Triplet over a LineSource. It reads each line exactly once
// and holds at most three of them; it cannot be rewound.
type Window struct {
	src     LineSource
	t       Triplet
	ahead   bool // t.Next holds a real line
	started bool
	done    bool
}

func NewWindow(src LineSource) *Window { return &Window{src: src} }

// Next advances the window. It returns false once the source is exhausted.
func (w *Window) Next() bool {
	if w.done {
		return false
	}
	if !w.started {
		w.started = true
		if !w.src.Scan() {
			w.done = true
			return false
		}
		w.t.Cur = w.src.Text()
	} else {
		if !w.ahead {
			w.done = true
			return false
		}
		w.t.Prev, w.t.HasPrev = w.t.Cur, true
		w.t.Cur = w.t.Next
	}
	if w.src.Scan() {
		w.t.Next, w.ahead = w.src.Text(), true
	} else {
		w.t.Next, w.ahead = "", false
	}
	return true
}

// Triplet returns the current view. Valid only after Next returned true.
func (w *Window) Triplet() Triplet { return w.t }

// Err returns the source's error, if any.
func (w *Window) Err() error { return w.src.Err() }

// Lines adapts an in-memory slice to a LineSource.
func Lines(lines []string) LineSource { return &sliceSource{lines: lines, i: -1} }

type sliceSource struct {
	lines []string
	i     int
}

func (s *sliceSource) Scan() bool {
	if s.i+1 >= len(s.lines) {
		s.i = len(s.lines)
		return false
	}
	s.i++
	return true
}

func (s *sliceSource) Text() string { return s.lines[s.i] }
func (s *sliceSource) Err() error   { return nil }
