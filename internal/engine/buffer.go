package engine

import (
	"errors"
	"fmt"
)

// ErrBadPatch is returned for a patch that does not target a line this
// buffer handed out.
var ErrBadPatch = errors.New("patch target not in buffer")

// EditKind names why a line was changed or added.
type EditKind string

const (
	EditSnort     EditKind = "snort"
	EditSquirt    EditKind = "squirt"
	EditCompanion EditKind = "companion"
	EditPrime     EditKind = "prime"
)

// Edit records one change to the output. Before is empty for inserted lines.
type Edit struct {
	Index  int
	Kind   EditKind
	Before string
	After  string
}

// Mark is a position handed out by Buffer.Append. The zero Mark is invalid.
type Mark struct {
	i  int
	ok bool
}

// Next is the mark of the line after m; it is only valid to patch once
// that line has been appended.
func (m Mark) Next() Mark { return Mark{i: m.i + 1, ok: m.ok} }

// Index is the buffer position, or -1 for the zero Mark.
func (m Mark) Index() int {
	if !m.ok {
		return -1
	}
	return m.i
}

// PatchRequest replaces the line at At.
type PatchRequest struct {
	At   Mark
	Line string
	Kind EditKind
}

// Buffer is the output of one run. Lines are only ever appended, or replaced
// in place through Patch.
type Buffer struct {
	lines []string
	edits []Edit
}

// Append adds a line from the input stream.
func (b *Buffer) Append(line string) Mark {
	b.lines = append(b.lines, line)
	return Mark{i: len(b.lines) - 1, ok: true}
}

// Insert appends synthesized lines and records them as edits.
func (b *Buffer) Insert(kind EditKind, lines ...string) {
	for _, l := range lines {
		m := b.Append(l)
		b.edits = append(b.edits, Edit{Index: m.i, Kind: kind, After: l})
	}
}

// Last is the mark of the most recently appended line.
func (b *Buffer) Last() Mark {
	if len(b.lines) == 0 {
		return Mark{}
	}
	return Mark{i: len(b.lines) - 1, ok: true}
}

// Patch is the single place already-emitted output changes.
func (b *Buffer) Patch(p PatchRequest) error {
	if !p.At.ok || p.At.i < 0 || p.At.i >= len(b.lines) {
		return fmt.Errorf("%w: index %d, length %d", ErrBadPatch, p.At.Index(), len(b.lines))
	}
	b.edits = append(b.edits, Edit{Index: p.At.i, Kind: p.Kind, Before: b.lines[p.At.i], After: p.Line})
	b.lines[p.At.i] = p.Line
	return nil
}

func (b *Buffer) Len() int        { return len(b.lines) }
func (b *Buffer) Lines() []string { return b.lines }
func (b *Buffer) Edits() []Edit   { return b.edits }
