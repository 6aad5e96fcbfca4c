package cliutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.gcode")
	b := filepath.Join(dir, "b.gcode")
	require.NoError(t, os.WriteFile(a, []byte("G1\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("G1\n"), 0o644))

	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.gcode"), "-", "literal.gcode"})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, "-", "literal.gcode"}, got)

	_, err = ExpandPositionals([]string{filepath.Join(dir, "*.x3g")})
	assert.ErrorContains(t, err, "no input matched")

	_, err = ExpandPositionals([]string{"[bad"})
	assert.ErrorContains(t, err, "bad glob")
}

func TestOutputPath(t *testing.T) {
	for in, want := range map[string]string{
		"part.gcode":         "part.dual.gcode",
		"dir/part.gcode.gz":  "dir/part.dual.gcode",
		"noext":              "noext.dual.gcode",
		"dir.v2/part":        "dir.v2/part.dual.gcode",
		"slices/a.b.gcode":   "slices/a.b.dual.gcode",
	} {
		assert.Equal(t, want, OutputPath(in, ".dual.gcode"), in)
	}
}

func TestHasSuffixFold(t *testing.T) {
	assert.True(t, HasSuffixFold("PART.GCODE", ".gcode"))
	assert.False(t, HasSuffixFold("gcode", ".gcode"))
}
