package history

import (
	"sync"
	"time"
)

// Debouncer runs at most one pending function after a quiet period.
//
// Scheduling again replaces the pending function and restarts the period
// (trailing edge). Whatever was pending before is dropped; callers that need
// it run must Flush first.
type Debouncer struct {
	mtx   sync.Mutex
	delay time.Duration
	timer *time.Timer
	group string
	fn    func()
	gen   uint64
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to be called once the quiet period has passed
// without another Schedule, Cancel or Flush.
func (d *Debouncer) Schedule(group string, fn func()) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.stop()
	d.group = group
	d.fn = fn
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mtx.Lock()
	if gen != d.gen || d.fn == nil {
		d.mtx.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.gen++
	d.mtx.Unlock()

	fn()
}

// Cancel drops the pending function without calling it.
func (d *Debouncer) Cancel() {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	d.stop()
	d.fn = nil
}

// Flush calls the pending function right away, on the calling goroutine.
// It reports whether there was one.
func (d *Debouncer) Flush() bool {
	d.mtx.Lock()
	fn := d.fn
	d.stop()
	d.fn = nil
	d.mtx.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending returns the group of the pending function, if there is one.
func (d *Debouncer) Pending() (string, bool) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.group, d.fn != nil
}

// stop invalidates the running timer; a fire that already started sees the
// new generation and does nothing.
func (d *Debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
