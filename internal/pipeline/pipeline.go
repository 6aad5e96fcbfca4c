// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dualretract/internal/engine"
	"dualretract/internal/gcode"
	"dualretract/internal/gcodeio"
	"dualretract/internal/writers"
)

// ErrOutputExists is returned when an output file is already there and
// overwriting was not asked for.
var ErrOutputExists = errors.New("output exists")

// Sink receives a finished result.
type Sink func(engine.Result) error

// ProcessStream rewrites r and hands the result to sink. Nothing reaches the
// sink when the rewrite fails or ctx is cancelled.
func ProcessStream(ctx context.Context, r io.Reader, rw Rewriter, sink Sink) (engine.Result, error) {
	sc := gcodeio.NewScanner(ctx, r)
	res, err := rw.Process(gcode.NewWindow(sc))
	if err != nil {
		return engine.Result{}, err
	}
	if err := sink(res); err != nil {
		return res, err
	}
	return res, nil
}

// Job is one input to process.
type Job struct {
	Input  string // path, or "-" for stdin
	Output string // path, or "-" / "" for Stdout
	Format string // a writers format; "" is gcode
	Force  bool   // overwrite an existing Output
	RunID  string // generated when empty

	Engine engine.Config
	Logger *zap.Logger
	Stdout io.Writer
}

// Run processes one Job end to end.
func Run(ctx context.Context, job Job) (engine.Result, error) {
	if job.RunID == "" {
		job.RunID = uuid.NewString()
	}
	if job.Format == "" {
		job.Format = "gcode"
	}
	log := job.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("run_id", job.RunID), zap.String("input", job.Input))

	toFile := job.Output != "" && job.Output != gcodeio.Stdin
	if toFile && !job.Force {
		if _, err := os.Stat(job.Output); err == nil {
			return engine.Result{}, fmt.Errorf("%w: %s (use --force)", ErrOutputExists, job.Output)
		}
	}

	rc, err := gcodeio.Open(job.Input)
	if err != nil {
		return engine.Result{}, err
	}
	defer rc.Close()

	cfg := job.Engine
	cfg.Logger = log
	sink := func(res engine.Result) error {
		doc := writers.Document{Source: job.Input, RunID: job.RunID, Result: res}
		if !toFile {
			return writers.Write(job.Format, job.Stdout, doc)
		}
		return WriteFileAtomic(job.Output, func(w io.Writer) error {
			return writers.Write(job.Format, w, doc)
		})
	}

	res, err := ProcessStream(ctx, rc, engine.New(cfg), sink)
	if err != nil {
		log.Debug("run failed", zap.Error(err))
		return res, fmt.Errorf("%s: %w", job.Input, err)
	}
	log.Info("processed",
		zap.String("output", outputName(job.Output)),
		zap.Int("lines_in", res.Stats.LinesIn),
		zap.Int("lines_out", res.Stats.LinesOut),
		zap.Int("toolchanges", res.Stats.Toolchanges),
		zap.Int("purge_skipped", res.Stats.PurgeSkipped),
		zap.Int("snorts", res.Stats.SnortsPatched),
		zap.Int("squirts", res.Stats.SquirtsPatched),
		zap.Int("prime_blocks", res.Stats.PrimeBlocks))
	return res, nil
}

func outputName(p string) string {
	if p == "" {
		return gcodeio.Stdin
	}
	return p
}

// WriteFileAtomic writes through a temp file in the target directory and
// renames it into place once fill succeeds.
func WriteFileAtomic(path string, fill func(io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), fs.FileMode(0o644)); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
