// Package gcodeio opens gcode inputs and scans them line by line with
// terminators intact.
package gcodeio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"

	"go.uber.org/multierr"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// multiReadCloser closes every layer it wraps.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

// Open returns a reader for path. "-" reads stdin; gzip input is detected
// by its magic number and decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	var src io.ReadCloser
	if path == Stdin {
		src = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
	}
	return Decompress(src)
}

// Decompress peeks at rc and unwraps gzip when the magic bytes match.
// Closing the result closes rc.
func Decompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, rc}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{rc}}, nil
}
