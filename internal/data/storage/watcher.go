package storage

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/tallyhq/tally/internal/util"
)

// StoreWatcher signals whenever the frames file is rewritten by another
// invocation. Saves replace the file by rename, so the watch is on the
// containing directory rather than the file itself.
type StoreWatcher struct {
	watcher *fsnotify.Watcher
	events  chan struct{}
}

// NewStoreWatcher watches the store file at path.
func NewStoreWatcher(path string) (*StoreWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	sw := &StoreWatcher{
		watcher: watcher,
		events:  make(chan struct{}, 1),
	}
	go sw.processEvents(filepath.Base(path))

	return sw, nil
}

func (sw *StoreWatcher) processEvents(name string) {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				close(sw.events)
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			// Coalesce bursts; the reader only needs to know the
			// file changed.
			select {
			case sw.events <- struct{}{}:
			default:
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				close(sw.events)
				return
			}
			util.LogError("Store watch error: " + err.Error())
		}
	}
}

// Events signals store file changes.
func (sw *StoreWatcher) Events() <-chan struct{} {
	return sw.events
}

// Close stops watching.
func (sw *StoreWatcher) Close() error {
	return sw.watcher.Close()
}
