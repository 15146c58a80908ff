package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cristianoliveira/debugmenu/internal/colors"
	"github.com/fsnotify/fsnotify"
)

// WatchDebounce batches the burst of events an editor produces on save.
const WatchDebounce = 100 * time.Millisecond

// Watcher reloads the settings file when it changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
}

// NewWatcher starts watching the directory holding path. The directory is
// watched rather than the file so editors that replace the file on save
// keep being observed.
func NewWatcher(path string) (*Watcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create settings watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{watcher: w, path: filepath.Clean(path), debounce: WatchDebounce}, nil
}

// Run delivers every successful reload to onChange until ctx is done, then
// closes the watcher. Files that fail to load are reported and skipped.
func (w *Watcher) Run(ctx context.Context, onChange func(*Settings)) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			s, err := LoadFrom(w.path)
			if err != nil {
				colors.Warning(fmt.Sprintf("Ignoring settings change: %v", err))
				continue
			}
			onChange(s)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			colors.Warning(fmt.Sprintf("settings watcher error: %v", err))
		}
	}
}

// Watch is NewWatcher followed by Run.
func Watch(ctx context.Context, path string, onChange func(*Settings)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	return w.Run(ctx, onChange)
}
