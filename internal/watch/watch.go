// Package watch post-processes files dropped into a directory once writes to
// them have settled.
package watch

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultSettle is how long a file must stay quiet before it is handled.
const DefaultSettle = 500 * time.Millisecond

// Handler processes one settled file. Errors are logged, not fatal.
type Handler func(ctx context.Context, path string) error

type Options struct {
	Dir    string
	Settle time.Duration          // <= 0 uses DefaultSettle
	Match  func(path string) bool // nil matches everything
	Logger *zap.Logger
}

// Stats counts what a watcher did.
type Stats struct {
	Events  int
	Handled int
	Failed  int
}

type Watcher struct {
	opts    Options
	log     *zap.Logger
	fsw     *fsnotify.Watcher
	pending map[string]time.Time
	stats   Stats
}

// New starts watching opts.Dir. Events that arrive before Run are kept.
func New(opts Options) (*Watcher, error) {
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	if opts.Match == nil {
		opts.Match = func(string) bool { return true }
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(opts.Dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	log.Info("watching", zap.String("dir", opts.Dir), zap.Duration("settle", opts.Settle))
	return &Watcher{
		opts:    opts,
		log:     log,
		fsw:     fsw,
		pending: make(map[string]time.Time),
	}, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run handles settled files one at a time until ctx is done, then returns
// ctx.Err().
func (w *Watcher) Run(ctx context.Context, handle Handler) (Stats, error) {
	tick := w.opts.Settle / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return w.stats, ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return w.stats, errors.New("watch: event channel closed")
			}
			w.event(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return w.stats, errors.New("watch: error channel closed")
			}
			w.log.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			w.flush(ctx, now, handle)
		}
	}
}

func (w *Watcher) event(ev fsnotify.Event) {
	if !w.opts.Match(ev.Name) {
		return
	}
	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		w.stats.Events++
		w.pending[ev.Name] = time.Now()
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		delete(w.pending, ev.Name)
	}
}

func (w *Watcher) flush(ctx context.Context, now time.Time, handle Handler) {
	for path, last := range w.pending {
		if now.Sub(last) < w.opts.Settle {
			continue
		}
		delete(w.pending, path)
		if ctx.Err() != nil {
			return
		}
		if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
			continue
		}
		if err := handle(ctx, path); err != nil {
			w.stats.Failed++
			w.log.Warn("handler failed", zap.String("path", path), zap.Error(err))
			continue
		}
		w.stats.Handled++
	}
}
