// Package watch re-runs the chaos-board checks whenever a watched target
// changes on disk. It exists for local development; CI runs a single check.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/chaos-board/chaosgate/pkg/core"
	"github.com/chaos-board/chaosgate/pkg/gate"
)

// Runner drives the re-validation loop.
type Runner struct {
	Dir       string
	BaseRef   string
	Patterns  []string
	Debounce  time.Duration
	Validator *gate.Validator
	Logger    *slog.Logger

	// OnResult receives every validation outcome, including the initial
	// pass before any filesystem event.
	OnResult func(core.Result)
}

// Run blocks until ctx is cancelled, validating once up front and again
// after every debounced change to a watched target.
func (r *Runner) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := r.addDirs(watcher); err != nil {
		return err
	}

	r.validate(ctx)

	done := make(chan struct{})
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(done)
		return r.loop(ctx, watcher)
	}, lifecycle.WithErrorHandler(func(err error) {
		if r.Logger != nil {
			r.Logger.Error("watch loop failed", "error", err)
		}
	}))

	<-done
	return nil
}

// addDirs registers every directory under Dir, skipping .git. fsnotify
// watches directories, not globs; matching happens per event.
func (r *Runner) addDirs(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (r *Runner) loop(ctx context.Context, watcher *fsnotify.Watcher) error {
	debounce := r.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !r.matches(ev.Name) {
				continue
			}
			if r.Logger != nil {
				r.Logger.Debug("target changed", "path", ev.Name, "op", ev.Op.String())
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if r.Logger != nil {
				r.Logger.Error("fsnotify error", "error", err)
			}

		case <-timer.C:
			r.validate(ctx)
		}
	}
}

// matches reports whether the event path names a watched target.
func (r *Runner) matches(name string) bool {
	rel, err := filepath.Rel(r.Dir, name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || strings.HasPrefix(rel, ".git/") {
		return false
	}

	for _, pattern := range r.Patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (r *Runner) validate(ctx context.Context) {
	res, err := r.Validator.Validate(ctx, r.BaseRef)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Error("validation aborted", "error", err)
		}
		return
	}
	if r.OnResult != nil {
		r.OnResult(res)
	}
}
