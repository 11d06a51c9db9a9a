package pressroom

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/eringen/pressroom/debounce"
)

// Watcher invalidates a PageCache when files under a content directory change.
// Bursts of events (an editor saving a file, git checkout) cause one reload.
type Watcher struct {
	fsw      *fsnotify.Watcher
	cache    *PageCache
	debounce *debounce.Debouncer
	log      *logrus.Logger
	done     chan struct{}
}

// NewWatcher starts watching dir and every directory below it.
func NewWatcher(dir string, cache *PageCache, quiet time.Duration, log *logrus.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:   fsw,
		cache: cache,
		log:   log,
		done:  make(chan struct{}),
	}
	w.debounce = debounce.New(quiet, w.reload)
	if err := w.addTree(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("content watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if event.Has(fsnotify.Create) {
		if err := w.addTree(event.Name); err != nil {
			// The path may be gone again by the time we walk it.
			w.log.WithError(err).WithField("path", event.Name).Debug("watch new path")
		}
	}
	w.log.WithFields(logrus.Fields{
		"path": event.Name,
		"op":   event.Op.String(),
	}).Debug("content changed")
	w.debounce.Trigger()
}

func (w *Watcher) reload() {
	w.cache.Invalidate()
	w.log.Info("content changed, page cache invalidated")
}

// Close stops watching. A pending reload is dropped.
func (w *Watcher) Close() error {
	w.debounce.Stop()
	err := w.fsw.Close()
	<-w.done
	return err
}
