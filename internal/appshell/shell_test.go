package appshell

import (
	"context"
	"io"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecPassesThrough(t *testing.T) {
	code := Exec(func(_ context.Context, argv []string, _, _ io.Writer) int {
		assert.Equal(t, []string{"a"}, argv)
		return 3
	}, []string{"a"}, io.Discard, io.Discard)
	assert.Equal(t, 3, code)
}

func TestExecSignalIs130(t *testing.T) {
	code := Exec(func(ctx context.Context, _ []string, _, _ io.Writer) int {
		_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
			t.Error("context not cancelled by SIGTERM")
		}
		return 0
	}, nil, io.Discard, io.Discard)
	assert.Equal(t, ExitCanceled, code)
}
