// internal/batch/watch.go
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch re-transforms documents under the input folder whenever they are written or
// created, until ctx is cancelled. ready, if not nil, is closed once watching starts.
func (r *Runner) Watch(ctx context.Context, ready chan<- struct{}) error {
	logger := log.Ctx(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := r.watchTree(watcher, r.opts.Input); err != nil {
		return err
	}
	logger.Info().Str("input", r.opts.Input).Msg("Watching for changes")
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Stopped watching")
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Watcher error")
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(ctx, watcher, event)
		}
	}
}

func (r *Runner) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	logger := log.Ctx(ctx)
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if r.isOutput(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := r.watchTree(watcher, event.Name); err != nil {
				logger.Warn().Err(err).Str("path", event.Name).Msg("Failed to watch new directory")
			}
			return
		}
	}
	if !r.store.Matches(event.Name) {
		return
	}

	doc, err := r.ProcessFile(event.Name)
	if err != nil {
		logger.Error().Err(err).Str("path", event.Name).Msg("Failed to recolor changed document")
		return
	}
	logger.Info().
		Str("path", doc.Path).
		Str("output", doc.Output).
		Int("substituted", doc.Substituted).
		Msg("Document recolored")
}

func (r *Runner) watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if r.isOutput(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// isOutput reports whether path lies in the output folder, which may be nested in
// the input folder.
func (r *Runner) isOutput(path string) bool {
	rel, err := filepath.Rel(r.opts.Output, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
