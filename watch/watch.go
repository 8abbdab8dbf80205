// Package watch notifies about changes to a single file.
package watch

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be left alone after a change before
// an Event is sent, unless Opts.Debounce is set.
const DefaultDebounce = 100 * time.Millisecond

// Opts has options for a new Watcher.
type Opts struct {
	Verbose  bool
	Debounce time.Duration // Quiet time after the last change before sending an Event.
}

// Event is a change to the watched file (or an error).
type Event struct {
	// If set, an error occurred.
	Err error

	// Path of the changed file, as passed to New.
	Path string
}

// Watcher sends an Event on channel Events each time the watched file has been
// written.
type Watcher struct {
	Events chan Event

	opts    Opts
	path    string
	watcher *fsnotify.Watcher
	stop    chan struct{}
}

// New starts watching the file at path. The directory holding path is watched,
// so editors that replace the file by renaming still trigger events, and path
// does not need to exist yet.
//
// Callers must call Close to clean up.
func New(path string, opts *Opts) (watcher *Watcher, rerr error) {
	w := &Watcher{
		Events: make(chan Event, 1),
		path:   path,
		stop:   make(chan struct{}),
	}
	if opts != nil {
		w.opts = *opts
	}
	if w.opts.Debounce <= 0 {
		w.opts.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new file change watcher: %v", err)
	}
	w.watcher = fw

	// Ensure cleanup in case of failure.
	defer func() {
		if rerr != nil {
			w.Close()
		}
	}()

	go w.run()

	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		return nil, fmt.Errorf("registering file change watcher for %s: %v", dir, err)
	}
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.Events)

	logf := func(format string, args ...interface{}) {
		if w.opts.Verbose {
			log.Printf(format, args...)
		}
	}

	name := filepath.Clean(w.path)
	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logf("watch, %s", ev)
			// Writes often come in bursts, only send an event when they stop.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.opts.Debounce)

		case <-timer.C:
			select {
			case w.Events <- Event{Path: w.path}:
			case <-w.stop:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Events <- Event{Err: fmt.Errorf("watching for changes: %v", err)}:
			case <-w.stop:
				return
			}
		}
	}
}

// Close stops watching. No further Events will be sent, and channel Events is
// closed.
func (w *Watcher) Close() error {
	select {
	case <-w.stop:
		return nil
	default:
	}
	close(w.stop)
	return w.watcher.Close()
}
