package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of events into a single callback. Each
// Trigger replaces the pending callback and restarts the quiet-period
// timer, so only the last event of a burst fires. Editors and build
// tools often write a file several times in quick succession; without
// debouncing each write would start its own validation run.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	stopped bool
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback to run once the quiet period elapses with
// no further triggers. It replaces any callback still pending.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	cb := d.pending
	d.pending = nil
	stopped := d.stopped
	d.mu.Unlock()

	if stopped || cb == nil {
		return
	}
	cb()
}

// Stop cancels any pending callback. It is safe to call more than once,
// and triggers after Stop are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
