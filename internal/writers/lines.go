package writers

import (
	"io"
	"strings"
)

// StartLineWriter streams gcode lines to out. A line without a terminator
// gets "\n" so the next line never runs into it.
func StartLineWriter(out io.Writer, bufSize int) (chan<- string, <-chan error) {
	return start[string](out, bufSize, func(w io.Writer) func(string) error {
		return func(line string) error {
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
			if !strings.HasSuffix(line, "\n") {
				_, err := io.WriteString(w, "\n")
				return err
			}
			return nil
		}
	})
}
