package watcher

import (
	"sync"
	"time"
)

// Debouncer delays a per-path callback until the path has stayed quiet for
// the wait interval. Editors and downloads write a file in several bursts;
// without this each burst would queue its own vectorization job.
type Debouncer struct {
	wait time.Duration
	fire func(path string)

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

// NewDebouncer builds a debouncer that calls fire once per path after wait
// has elapsed with no further triggers for it.
func NewDebouncer(wait time.Duration, fire func(string)) *Debouncer {
	return &Debouncer{
		wait:    wait,
		fire:    fire,
		pending: make(map[string]*time.Timer),
	}
}

// Trigger restarts the quiet-interval timer for path. Triggers arriving
// after Stop are dropped.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if timer, ok := d.pending[path]; ok {
		timer.Stop()
	}
	d.pending[path] = time.AfterFunc(d.wait, func() { d.settle(path) })
}

// settle runs when a path's quiet interval elapses.
func (d *Debouncer) settle(path string) {
	d.mu.Lock()
	_, live := d.pending[path]
	delete(d.pending, path)
	stopped := d.stopped
	d.mu.Unlock()

	// A timer that lost the race against Cancel or Stop must not fire.
	if live && !stopped && d.fire != nil {
		d.fire(path)
	}
}

// Cancel discards the pending callback for path, if any.
func (d *Debouncer) Cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[path]; ok {
		timer.Stop()
		delete(d.pending, path)
	}
}

// Stop discards every pending callback and rejects further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for path, timer := range d.pending {
		timer.Stop()
		delete(d.pending, path)
	}
}
