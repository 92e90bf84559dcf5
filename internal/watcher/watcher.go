// Package watcher watches a source directory for new or modified documents
// and enqueues vectorization jobs for them. Events are debounced per path so
// a file being written in several bursts only produces one job.
package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ragmill/internal/loader"
	"github.com/ragmill/internal/queue"
)

// debounceDelay is how long a path must stay quiet before its job is queued.
const debounceDelay = 500 * time.Millisecond

// Watcher monitors one directory tree and enqueues a vectorize job per
// settled file change.
type Watcher struct {
	root      string
	queue     queue.Queue
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// New creates a watcher over root. The directory is created if missing, and
// all existing subdirectories are registered.
func New(root string, q queue.Queue) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(absRoot); os.IsNotExist(err) {
		if err := os.MkdirAll(absRoot, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create watch directory: %w", err)
		}
		log.Printf("watcher.New: created watch directory %s", absRoot)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := fsw.Add(path); err != nil {
				log.Printf("watcher.New: failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		root:   absRoot,
		queue:  q,
		fsw:    fsw,
		ctx:    ctx,
		cancel: cancel,
	}
	w.debouncer = NewDebouncer(debounceDelay, w.enqueue)
	return w, nil
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Start begins processing events. It returns immediately; call Stop to shut
// the watcher down.
func (w *Watcher) Start() {
	log.Printf("watcher.Start: watching %s (recursive)", w.root)
	w.wg.Add(1)
	go w.processEvents()
}

// Stop cancels event processing, pending debounce timers, and the underlying
// filesystem watcher.
func (w *Watcher) Stop() {
	w.cancel()
	w.debouncer.Stop()
	if err := w.fsw.Close(); err != nil {
		log.Printf("watcher.Stop: error closing watcher: %v", err)
	}
	w.wg.Wait()
}

// ScanExisting triggers the debouncer for every supported file already under
// the root, so documents present before startup are vectorized too.
func (w *Watcher) ScanExisting() {
	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || loader.IsTemporary(path) || !loader.IsSupported(path) {
			return nil
		}
		w.debouncer.Trigger(path)
		return nil
	})
	if err != nil {
		log.Printf("watcher.ScanExisting: error scanning %s: %v", w.root, err)
	}
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("processEvents: watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New subdirectories must be registered or events inside them are lost.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.fsw.Add(event.Name); err != nil {
				log.Printf("handleEvent: failed to watch new directory %s: %v", event.Name, err)
			} else {
				log.Printf("handleEvent: watching new directory %s", event.Name)
			}
			return
		}
	}

	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		w.debouncer.Cancel(event.Name)
		return
	}

	if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
		if loader.IsTemporary(event.Name) || !loader.IsSupported(event.Name) {
			return
		}
		w.debouncer.Trigger(event.Name)
	}
}

// enqueue is the debouncer callback: the path settled, so queue its job.
func (w *Watcher) enqueue(path string) {
	job, err := queue.NewVectorizeFileJob(path)
	if err != nil {
		log.Printf("enqueue: failed to build job for %s: %v", path, err)
		return
	}
	if err := w.queue.Enqueue(w.ctx, job); err != nil {
		log.Printf("enqueue: failed to enqueue %s: %v", path, err)
		return
	}
	log.Printf("enqueue: queued vectorization of %s", path)
}
