package assets

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/davsar89/GDML-Studio/engine/core"
)

/**
 * @brief Watches document files and reports when one is written or
 * recreated. Each file's parent directory is watched, so a file replaced
 * through a rename keeps reporting.
 */
type DocumentWatcher struct {
	files map[string]struct{}

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
	errors   chan error
}

func NewDocumentWatcher() (*DocumentWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dw := &DocumentWatcher{
		files:    make(map[string]struct{}),
		fsnotify: fsWatch,
		changes:  make(chan string, 16),
		errors:   make(chan error, 4),
		done:     make(chan struct{}),
	}
	go dw.start()
	return dw, nil
}

// Add starts watching the named document.
func (dw *DocumentWatcher) Add(path string) error {
	dw.mutex.Lock()
	defer dw.mutex.Unlock()
	if dw.isClosed {
		return core.ErrWatcherClosed
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := dw.fsnotify.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	dw.files[abs] = struct{}{}
	return nil
}

// Remove stops watching the named document.
func (dw *DocumentWatcher) Remove(path string) error {
	dw.mutex.Lock()
	defer dw.mutex.Unlock()
	if dw.isClosed {
		return core.ErrWatcherClosed
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	delete(dw.files, abs)
	dir := filepath.Dir(abs)
	for f := range dw.files {
		if filepath.Dir(f) == dir {
			return nil
		}
	}
	return dw.fsnotify.Remove(dir)
}

// Changes delivers the absolute path of every watched document that changed.
func (dw *DocumentWatcher) Changes() <-chan string {
	return dw.changes
}

func (dw *DocumentWatcher) Errors() <-chan error {
	return dw.errors
}

func (dw *DocumentWatcher) Close() error {
	dw.mutex.Lock()
	defer dw.mutex.Unlock()
	if dw.isClosed {
		return core.ErrWatcherClosed
	}
	dw.isClosed = true
	close(dw.done)
	return nil
}

func (dw *DocumentWatcher) start() {
	for {
		select {
		case e, ok := <-dw.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if dw.isWatched(e.Name) {
				select {
				case dw.changes <- filepath.Clean(e.Name):
				default:
					// A reload is already queued for this burst of writes.
				}
			}

		case err, ok := <-dw.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)
			select {
			case dw.errors <- err:
			default:
			}

		case <-dw.done:
			dw.fsnotify.Close()
			close(dw.changes)
			close(dw.errors)
			return
		}
	}
}

func (dw *DocumentWatcher) isWatched(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	dw.mutex.RLock()
	defer dw.mutex.RUnlock()
	_, ok := dw.files[abs]
	return ok
}
