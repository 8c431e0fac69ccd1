package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads map files when they change on disk.
type Watcher struct {
	mu sync.Mutex

	fsw    *fsnotify.Watcher
	paths  map[string]bool
	reload func(path string)
	onErr  func(err error)

	closed  bool
	closeCh chan struct{}
	done    sync.WaitGroup
}

// NewWatcher creates a watcher that invokes reload with the changed path.
// The onErr callback may be nil.
func NewWatcher(reload func(path string), onErr func(err error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		paths:   make(map[string]bool),
		reload:  reload,
		onErr:   onErr,
		closeCh: make(chan struct{}),
	}

	w.done.Add(1)
	go w.run()

	return w, nil
}

// Watch adds a map file to the watch set. The containing directory is
// watched so editors that replace the file on save still trigger events.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}

	w.paths[abs] = true
	return w.fsw.Add(filepath.Dir(abs))
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.done.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.done.Done()

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			w.mu.Lock()
			watched := w.paths[abs]
			w.mu.Unlock()
			if watched {
				w.reload(abs)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onErr != nil {
				w.onErr(err)
			}
		}
	}
}
