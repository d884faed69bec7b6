// Package shaderwatch reports edits to shader source files. It never touches
// GL: the render thread drains the queue and rebuilds programs itself.
package shaderwatch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// queueSize bounds pending names; further edits to a queued file are
// dropped because the pending entry already covers them.
const queueSize = 64

// Extensions are the shader stage suffixes worth reloading.
var Extensions = map[string]bool{".vs": true, ".fs": true, ".gs": true}

// Watcher pushes the base name of every written or created shader file in
// one directory onto a buffered channel.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	log     zerolog.Logger

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func New(dir string, log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}

	w := &Watcher{
		watcher: fw,
		changes: make(chan string, queueSize),
		done:    make(chan struct{}),
		log:     log,
	}
	w.wg.Add(1)
	go w.loop()
	log.Info().Str("dir", dir).Msg("watching shaders")
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if !Extensions[filepath.Ext(name)] {
				continue
			}
			select {
			case w.changes <- name:
			default:
				w.log.Debug().Str("file", name).Msg("reload queue full")
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("shader watcher error")
		}
	}
}

// Drain returns every queued name once, in first-seen order, without
// blocking.
func (w *Watcher) Drain() []string {
	var names []string
	seen := make(map[string]bool)
	for {
		select {
		case name := <-w.changes:
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}

// Close stops the watch goroutine. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
