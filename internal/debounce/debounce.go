// Package debounce defers a task until a quiet period has passed. Each new
// Schedule replaces the pending task and restarts the countdown.
package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer holds at most one pending task. It is safe for concurrent use.
type Debouncer struct {
	clock clockwork.Clock
	delay time.Duration

	mu      sync.Mutex
	idle    *sync.Cond
	gen     uint64
	task    func()
	timer   clockwork.Timer
	running int
}

// New returns a Debouncer that waits delay on clock before running a task.
func New(clock clockwork.Clock, delay time.Duration) *Debouncer {
	d := &Debouncer{clock: clock, delay: delay}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Schedule makes fn the pending task and restarts the countdown.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	d.task = fn

	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending task, if any. It reports whether one was dropped.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	had := d.task != nil
	d.stopLocked()
	d.gen++
	d.task = nil
	return had
}

// Flush runs the pending task now, on the caller's goroutine, and reports
// whether there was one. It also waits for a task the timer has already
// started, so no run outlives Flush.
//
// Cancel does not wait; callers that hold a lock the task takes must use
// Cancel, not Flush.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.task
	d.stopLocked()
	d.gen++
	d.task = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}

	d.mu.Lock()
	for d.running > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()

	return fn != nil
}

// Pending reports whether a task is waiting for its countdown.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.task != nil
}

// fire runs the task scheduled as generation gen unless it was superseded.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.task == nil {
		d.mu.Unlock()
		return
	}
	fn := d.task
	d.task = nil
	d.timer = nil
	d.running++
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running--
		d.idle.Broadcast()
		d.mu.Unlock()
	}()
	fn()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
