package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// DefaultSettle is how long a file must stay unchanged before it is
// reported.
const DefaultSettle = time.Second

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Settle is the quiet period after the last write. Zero means DefaultSettle.
	Settle time.Duration

	// Logger receives watch errors.
	Logger hclog.Logger
}

// Watcher reports files created in a directory.
type Watcher struct {
	root   string
	settle time.Duration
	log    hclog.Logger
}

// NewWatcher creates a watcher for root. Subdirectories are not watched.
func NewWatcher(root string, opts WatchOptions) *Watcher {
	settle := opts.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	log := opts.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Watcher{root: root, settle: settle, log: log}
}

// Watch blocks until ctx is cancelled, calling handle once for every file
// whose writes have settled. Calls are sequential; an error from handle
// stops the watch.
func (w *Watcher) Watch(ctx context.Context, handle func(ctx context.Context, path string) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	w.log.Debug("watching", "dir", w.root, "settle", w.settle)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleFsEvent(event); ok {
				pending[path] = time.Now()
			} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, event.Name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case now := <-ticker.C:
			for _, path := range w.settled(pending, now) {
				if err := handle(ctx, path); err != nil {
					return err
				}
			}
		}
	}
}

// handleFsEvent returns the path of a created or written regular file.
// Hidden files and directories are skipped.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

// settled removes and returns, in path order, the pending files that have
// been quiet for the settle period.
func (w *Watcher) settled(pending map[string]time.Time, now time.Time) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, path)
			delete(pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
