// internal/gcodeio/gcodeio_test.go
package gcodeio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "(Slice 1)\r\nM135 T0\nG1 X1"

func collect(t *testing.T, s *Scanner) []string {
	t.Helper()
	var got []string
	for s.Scan() {
		got = append(got, s.Text())
	}
	return got
}

func TestScannerKeepsTerminators(t *testing.T) {
	s := NewScanner(context.Background(), strings.NewReader(sample))
	assert.Equal(t, []string{"(Slice 1)\r\n", "M135 T0\n", "G1 X1"}, collect(t, s))
	assert.NoError(t, s.Err())
}

func TestScannerEmptyLines(t *testing.T) {
	s := NewScanner(context.Background(), strings.NewReader("\n\nx\n"))
	assert.Equal(t, []string{"\n", "\n", "x\n"}, collect(t, s))
}

func TestScannerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScanner(ctx, strings.NewReader("a\nb\nc\n"))
	require.True(t, s.Scan())
	cancel()
	assert.False(t, s.Scan())
	assert.ErrorIs(t, s.Err(), context.Canceled)
	assert.False(t, s.Scan(), "stays stopped")
}

func TestScannerLineTooLong(t *testing.T) {
	s := NewScanner(context.Background(), strings.NewReader(strings.Repeat("x", MaxLine+1)))
	assert.Empty(t, collect(t, s))
	assert.ErrorIs(t, s.Err(), bufio.ErrTooLong)
}

func TestOpenPlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.gcode")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0o644))

	var zb bytes.Buffer
	zw := gzip.NewWriter(&zb)
	_, err := zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	// No .gz suffix: detection is by content.
	zipped := filepath.Join(dir, "b.gcode")
	require.NoError(t, os.WriteFile(zipped, zb.Bytes(), 0o644))

	for _, fn := range []string{plain, zipped} {
		rc, err := Open(fn)
		require.NoError(t, err, fn)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, sample, string(data), fn)
		assert.NoError(t, rc.Close())
	}
}

func TestOpenShortFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "one")
	require.NoError(t, os.WriteFile(fn, []byte("x"), 0o644))
	rc, err := Open(fn)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestOpenStdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() { _, _ = io.WriteString(w, sample); _ = w.Close() }()

	rc, err := Open(Stdin)
	require.NoError(t, err)
	s := NewScanner(context.Background(), rc)
	assert.Len(t, collect(t, s), 3)
	require.NoError(t, rc.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
