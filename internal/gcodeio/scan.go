package gcodeio

import (
	"bufio"
	"bytes"
	"context"
	"io"
)

// MaxLine bounds a single gcode line.
const MaxLine = 1 << 20

// ScanLinesKeepEOL is bufio.ScanLines without stripping the terminator.
// A final line without one is returned as is.
func ScanLinesKeepEOL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Scanner yields lines of r and stops once ctx is done. It satisfies
// gcode.LineSource.
type Scanner struct {
	ctx context.Context
	sc  *bufio.Scanner
	err error
}

func NewScanner(ctx context.Context, r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxLine)
	sc.Split(ScanLinesKeepEOL)
	return &Scanner{ctx: ctx, sc: sc}
}

func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return false
	}
	return s.sc.Scan()
}

func (s *Scanner) Text() string { return s.sc.Text() }

func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.sc.Err()
}
