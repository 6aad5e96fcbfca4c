package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the shape a line was recognized as.
type Kind int

const (
	Plain Kind = iota
	Toolchange
	Snort      // single-line retract: "G1 F.. A5.0 (snort)"
	Squirt     // single-line prime:   "G1 F.. B5.0 (squirt)"
	SplitMove  // two-line form: "G1 F.." then "G1 E..", retract or prime by context
	LayerStart // "(Slice N ...)" or "(<layer> N ...)"
	PurgeMarker
)

func (k Kind) String() string {
	switch k {
	case Toolchange:
		return "toolchange"
	case Snort:
		return "snort"
	case Squirt:
		return "squirt"
	case SplitMove:
		return "split-move"
	case LayerStart:
		return "layer-start"
	case PurgeMarker:
		return "purge-marker"
	default:
		return "plain"
	}
}

// Class is the outcome of classifying one line (with its successor).
type Class struct {
	Kind Kind
	Tool int     // Toolchange only
	Pos  float64 // Snort, Squirt, SplitMove
}

// SplitForm reports whether the move spans the current and the next line.
func (c Class) SplitForm() bool { return c.Kind == SplitMove }

// IsSnort reports whether the line can be read as a retract.
func (c Class) IsSnort() bool { return c.Kind == Snort || c.Kind == SplitMove }

// IsSquirt reports whether the line can be read as a prime.
func (c Class) IsSquirt() bool { return c.Kind == Squirt || c.Kind == SplitMove }

var (
	toolchangeRe = regexp.MustCompile(`^M135 T([0-9])`)
	snortRe      = regexp.MustCompile(`^G1 F[0-9.-]+ [AB]([0-9.-]+) \(snort\)`)
	squirtRe     = regexp.MustCompile(`^G1 F[0-9.-]+ [AB]([0-9.-]+) \(squirt\)`)
	splitFeedRe  = regexp.MustCompile(`^G1 F[0-9.-]+\r?\n$`)
	splitPosRe   = regexp.MustCompile(`^G1 E([0-9.-]+)`)
	layerStartRe = regexp.MustCompile(`^\((Slice|<layer>) [0-9.]+.*\)`)
	purgeRe      = regexp.MustCompile(`(?i)purge`)
)

// Classify recognizes cur, looking at next only for the two-line move form.
// Lines carry their own terminators, as read from the stream.
func Classify(cur, next string) Class {
	if m := toolchangeRe.FindStringSubmatch(cur); m != nil {
		return Class{Kind: Toolchange, Tool: int(m[1][0] - '0')}
	}
	if strings.HasPrefix(cur, "G1 F") {
		if c, ok := classifyMove(cur, next); ok {
			return c
		}
	}
	if layerStartRe.MatchString(cur) {
		return Class{Kind: LayerStart}
	}
	if purgeRe.MatchString(cur) {
		return Class{Kind: PurgeMarker}
	}
	return Class{}
}

func classifyMove(cur, next string) (Class, bool) {
	if m := snortRe.FindStringSubmatch(cur); m != nil {
		return position(Snort, m[1])
	}
	if m := squirtRe.FindStringSubmatch(cur); m != nil {
		return position(Squirt, m[1])
	}
	if splitFeedRe.MatchString(cur) {
		if m := splitPosRe.FindStringSubmatch(next); m != nil {
			return position(SplitMove, m[1])
		}
	}
	return Class{}, false
}

// position parses the captured value; a malformed number ("1.2.3", "--")
// leaves the line Plain.
func position(k Kind, s string) (Class, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Class{}, false
	}
	return Class{Kind: k, Pos: v}, true
}

// IsLayerStart reports whether line opens a layer.
func IsLayerStart(line string) bool { return layerStartRe.MatchString(line) }

// IsPurge reports whether line mentions a purge region, in any case.
func IsPurge(line string) bool { return purgeRe.MatchString(line) }
