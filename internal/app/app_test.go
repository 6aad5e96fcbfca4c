package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"

	"dualretract/internal/appcore"
	"dualretract/internal/cli"
	"dualretract/internal/engine"
	"dualretract/internal/pipeline"
	"dualretract/internal/profile"
	"dualretract/internal/version"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{fmt.Errorf("write: %w", syscall.EPIPE), ExitOK},
		{cli.Usagef("bad"), ExitUsage},
		{fmt.Errorf("x: %w", profile.ErrNotFound), ExitUsage},
		{pipeline.ErrOutputExists, ExitUsage},
		{errors.New(`unknown command "x" for "dualretract"`), ExitUsage},
		{&engine.ToolError{Tool: engine.NoTool}, ExitRejected},
		{appcore.ErrFindings, ExitRejected},
		{errors.New("disk on fire"), ExitIO},
		{fmt.Errorf("in: %w", context.Canceled), ExitCanceled},
		{multierr.Combine(appcore.ErrFindings, errors.New("io")), ExitIO},
		{multierr.Combine(errors.New("io"), context.Canceled), ExitCanceled},
		{multierr.Combine(&engine.ToolError{Tool: 3}, cli.ErrUsage), ExitUsage},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func run(argv ...string) (int, string, string) {
	var out, errb bytes.Buffer
	code := Run(argv, &out, &errb)
	return code, out.String(), errb.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := run("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "dualretract version "+version.Version+"\n", out)

	code, out, _ = run("--version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "dualretract version "+version.Version+"\n", out)
}

func TestHelpAndExamples(t *testing.T) {
	code, out, _ := run()
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "dual-extrusion gcode post-processor")
	assert.Contains(t, out, "process")

	code, out, _ = run("--examples")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "quickstart")
}

func TestUsageErrors(t *testing.T) {
	for _, argv := range [][]string{
		{"--no-such-flag"},
		{"bogus"},
		{"-v", "-q", "version"},
		{"process", "part.gcode"},
		{"profiles", "show"},
		{"watch", "-p", "Replicator2X"},
	} {
		code, _, stderr := run(argv...)
		assert.Equal(t, ExitUsage, code, "%v", argv)
		assert.Contains(t, stderr, "error: usage", "%v", argv)
	}
}

func TestProfiles(t *testing.T) {
	code, out, _ := run("profiles")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Replicator2\nReplicator2X\nReplicatorDual\n", out)

	code, out, _ = run("profiles", "show", "Replicator2X")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"retract_distance_mm": 19`)
	assert.Contains(t, out, `"source": "builtin"`)

	code, _, stderr := run("profiles", "show", "Nope")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "profile not found")
}
