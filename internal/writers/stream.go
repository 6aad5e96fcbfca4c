package writers

import (
	"bufio"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across writer goroutines.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// start spins up a writer goroutine for values of type T. newEncode binds an
// encoder to the pooled buffer once per goroutine.
//
// After the first write error the goroutine keeps draining in so senders
// never block; the error is reported once in is closed.
func start[T any](out io.Writer, bufSize int, newEncode func(w io.Writer) func(T) error) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		encode := newEncode(bw)
		var err error
		for v := range in {
			if err != nil {
				continue
			}
			err = encode(v)
		}
		if err == nil {
			err = bw.Flush()
		}
		done <- quiet(err)
	}()

	return in, done
}
