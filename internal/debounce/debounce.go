// Package debounce coalesces bursts of events into a single call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer calls a function once events have stopped arriving for a fixed
// delay. Every Trigger restarts the wait.
//
// The function runs on its own goroutine. Debouncer is safe for concurrent
// use.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New returns a Debouncer that calls fn delay after the last Trigger.
// A delay of zero still defers fn to another goroutine.
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: max(delay, 0), fn: fn}
}

// Trigger records an event. It does nothing after Stop.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs fn unless a later Trigger or Stop superseded timer gen.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.fn()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels a scheduled call and disables the Debouncer.
// A call already running is not interrupted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
