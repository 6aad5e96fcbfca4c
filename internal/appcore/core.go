// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dualretract/internal/cliutil"
	"dualretract/internal/cmdutil"
	"dualretract/internal/engine"
	"dualretract/internal/gcode"
	"dualretract/internal/lint"
	"dualretract/internal/pipeline"
	"dualretract/internal/profile"
	"dualretract/internal/watch"
	"dualretract/internal/writers"
)

// ErrFindings is returned by Lint when at least one line was flagged.
var ErrFindings = errors.New("lint findings")

type Options struct {
	Inputs      []string
	Profile     string
	ProfileDirs []string

	Output string // single input only
	Suffix string
	Format string
	Force  bool
}

// LoadConfig resolves and validates a profile before any input is opened.
func LoadConfig(name string, dirs []string) (engine.Config, error) {
	p, err := profile.Load(name, dirs...)
	if err != nil {
		return engine.Config{}, err
	}
	return p.EngineConfig()
}

// Process rewrites every input in turn.
func Process(ctx context.Context, stdout io.Writer, log *zap.Logger, o Options) error {
	cfg, err := LoadConfig(o.Profile, o.ProfileDirs)
	if err != nil {
		return err
	}
	log = log.With(zap.String("profile", o.Profile))

	outw := bufio.NewWriter(stdout)
	single := len(o.Inputs) == 1
	perr := cmdutil.RunInputs(ctx, o.Inputs, func(ctx context.Context, in string) error {
		out := o.Output
		if !single {
			out = cliutil.OutputPath(in, o.Suffix)
		}
		_, err := pipeline.Run(ctx, pipeline.Job{
			Input:  in,
			Output: out,
			Format: o.Format,
			Force:  o.Force,
			Engine: cfg,
			Logger: log,
			Stdout: outw,
		})
		return err
	})
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return multierr.Append(perr, err)
	}
	return perr
}

// Lint reports every tokenizer finding as "path:line: message".
func Lint(ctx context.Context, stdout io.Writer, inputs []string) error {
	outw := bufio.NewWriter(stdout)
	total := 0
	err := cmdutil.RunInputs(ctx, inputs, func(ctx context.Context, in string) error {
		n, err := lint.File(ctx, in, func(le *gcode.LineError) error {
			_, werr := fmt.Fprintf(outw, "%s:%d: %v\n", in, le.Line, le.Err)
			return werr
		})
		total += n
		return err
	})
	if ferr := outw.Flush(); ferr != nil && !writers.IsBrokenPipe(ferr) {
		return multierr.Append(err, ferr)
	}
	if err != nil {
		return err
	}
	if total > 0 {
		return fmt.Errorf("%w: %d", ErrFindings, total)
	}
	return nil
}

type WatchOptions struct {
	Dir         string
	Profile     string
	ProfileDirs []string
	Suffix      string
	Format      string
	Settle      time.Duration
	Force       bool
}

// Watch processes gcode files that appear in o.Dir until ctx is done.
func Watch(ctx context.Context, log *zap.Logger, o WatchOptions) error {
	cfg, err := LoadConfig(o.Profile, o.ProfileDirs)
	if err != nil {
		return err
	}
	log = log.With(zap.String("profile", o.Profile))

	w, err := watch.New(watch.Options{
		Dir:    o.Dir,
		Settle: o.Settle,
		Match:  func(p string) bool { return IsSlice(p, o.Suffix) },
		Logger: log,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	stats, err := w.Run(ctx, func(ctx context.Context, path string) error {
		_, err := pipeline.Run(ctx, pipeline.Job{
			Input:  path,
			Output: cliutil.OutputPath(path, o.Suffix),
			Format: o.Format,
			Force:  o.Force,
			Engine: cfg,
			Logger: log,
		})
		return err
	})
	log.Info("watch stopped", zap.Int("handled", stats.Handled), zap.Int("failed", stats.Failed))
	return err
}

// IsSlice reports whether path looks like slicer output that has not been
// processed yet.
func IsSlice(path, suffix string) bool {
	name := strings.TrimSuffix(filepath.Base(path), ".gz")
	if strings.HasPrefix(name, ".") || cliutil.HasSuffixFold(name, suffix) {
		return false
	}
	return cliutil.HasSuffixFold(name, ".gcode")
}
