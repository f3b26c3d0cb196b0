package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/wikilink/internal/foundation/errors"
	"git.home.luguber.info/inful/wikilink/internal/logfields"
)

// DefaultDebounce is the quiet period before a change triggers a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watch rebuilds the site whenever the docs directory changes, until ctx is
// cancelled. Failed rebuilds are logged and watching continues. onBuild, if
// non-nil, receives each successful report.
func (b *Builder) Watch(ctx context.Context, debounce time.Duration, onBuild func(*Report)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	docsDir, err := filepath.Abs(b.cfg.Site.DocsDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve docs directory").Build()
	}
	outputDir, err := filepath.Abs(b.cfg.Site.OutputDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve output directory").Build()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()
	b.addDirsRecursive(watcher, docsDir, outputDir)

	rebuildReq, trigger, stop := newDebouncer(debounce)
	defer stop()

	b.logger.Info("Watching for changes", logfields.Path(docsDir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name, outputDir) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
					b.addDirsRecursive(watcher, ev.Name, outputDir)
				}
			}
			b.logger.Debug("File change detected", logfields.Path(ev.Name), "op", ev.Op.String())
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("Watcher error", logfields.Error(err))
		case <-rebuildReq:
			b.logger.Info("Change detected; rebuilding site")
			report, err := b.Build(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				b.logger.Warn("Rebuild failed", logfields.Error(err))
				continue
			}
			if onBuild != nil {
				onBuild(report)
			}
		}
	}
}

// newDebouncer returns a channel that receives once per burst of trigger
// calls, after the burst has been quiet for d.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

func (b *Builder) addDirsRecursive(w *fsnotify.Watcher, root, outputDir string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path == outputDir || (path != root && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			b.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden files, editor temp files and anything
// written under the output directory.
func shouldIgnoreEvent(path, outputDir string) bool {
	if path == outputDir || strings.HasPrefix(path, outputDir+string(filepath.Separator)) {
		return true
	}
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return base == "Thumbs.db"
}
