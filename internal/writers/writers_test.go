package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"dualretract/internal/engine"
	"dualretract/pkg/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var doc = Document{
	Source: "part.gcode",
	RunID:  "r1",
	Result: engine.Result{
		Lines: []string{"(Slice 1)\n", "G1 F250.000000 A3.000000\n", "M135 T1"},
		Edits: []engine.Edit{
			{Index: 1, Kind: engine.EditSnort, Before: "G1 F200 A5 (snort)\n", After: "G1 F250.000000 A3.000000\n"},
			{Index: 2, Kind: engine.EditPrime, After: "M135 T1"},
		},
		Stats: engine.Stats{LinesIn: 2, LinesOut: 3, SnortsPatched: 1, PrimeBlocks: 1},
	},
}

func TestWriteGcodeTerminatesLastLine(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Write("gcode", &b, doc))
	assert.Equal(t, "(Slice 1)\nG1 F250.000000 A3.000000\nM135 T1\n", b.String())
}

func TestWriteGcodeKeepsCRLF(t *testing.T) {
	var b bytes.Buffer
	d := Document{Result: engine.Result{Lines: []string{"a\r\n", "\n", "b"}}}
	require.NoError(t, Write("gcode", &b, d))
	assert.Equal(t, "a\r\n\nb\n", b.String())
}

func TestWriteEditsJSONL(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Write("jsonl", &b, doc))

	sc := bufio.NewScanner(&b)
	var edits []api.EditV1
	var sum api.SummaryV1
	for n := 1; sc.Scan(); n++ {
		if n <= len(doc.Result.Edits) {
			var e api.EditV1
			require.NoError(t, json.Unmarshal(sc.Bytes(), &e), "line %d", n)
			edits = append(edits, e)
			continue
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &sum))
	}
	require.Len(t, edits, 2)
	assert.Equal(t, api.EditV1{Source: "part.gcode", Index: 1, Kind: "snort", Before: "G1 F200 A5 (snort)\n", After: "G1 F250.000000 A3.000000\n"}, edits[0])
	assert.Empty(t, edits[1].Before)
	assert.Equal(t, ToAPISummary("part.gcode", "r1", doc.Result.Stats), sum)
}

func TestUnknownFormat(t *testing.T) {
	err := Write("nope-format", io.Discard, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Equal(t, []string{"gcode", "jsonl"}, Formats())
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestBrokenPipeIsNotAnError(t *testing.T) {
	assert.NoError(t, Write("gcode", failWriter{syscall.EPIPE}, doc))
	assert.NoError(t, Write("jsonl", failWriter{io.ErrClosedPipe}, doc))
}

func TestWriteErrorDrainsInput(t *testing.T) {
	boom := errors.New("disk full")
	in, done := StartLineWriter(failWriter{boom}, 1)
	// Far more than the pooled buffer holds; the sender must never block.
	line := strings.Repeat("x", 1024) + "\n"
	for i := 0; i < 256; i++ {
		in <- line
	}
	close(in)
	assert.ErrorIs(t, <-done, boom)
}

func TestWriteJSON(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteJSON(&b, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", b.String())
}
