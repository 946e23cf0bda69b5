// Package debounce coalesces bursts of calls into one call per pause.
package debounce

import (
	"sync"
	"time"
)

// Default debounce configuration constants.
const (
	defaultDelay = 300 * time.Millisecond
)

// Option applies a configuration option to the Debouncer.
type Option func(*Debouncer)

// WithDelay sets the quiet period that must pass before a call runs.
func WithDelay(d time.Duration) Option {
	return func(db *Debouncer) {
		if d >= 0 {
			db.delay = d
		}
	}
}

// WithHooks sets callbacks for replaced and fired calls. Either may be nil.
func WithHooks(onCoalesce, onFire func()) Option {
	return func(db *Debouncer) {
		db.onCoalesce = onCoalesce
		db.onFire = onFire
	}
}

// Debouncer runs only the last function handed to Trigger once no new
// Trigger has arrived for the configured delay. It is safe for concurrent use.
type Debouncer struct {
	delay      time.Duration
	onCoalesce func()
	onFire     func()

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	gen     uint64
	stopped bool

	running sync.WaitGroup
}

// New creates a debouncer.
func New(opts ...Option) *Debouncer {
	db := &Debouncer{delay: defaultDelay}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Trigger schedules fn, cancelling any call that has not run yet.
// It returns false once the debouncer is stopped.
func (db *Debouncer) Trigger(fn func()) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.stopped || fn == nil {
		return false
	}
	if db.cancelLocked() && db.onCoalesce != nil {
		db.onCoalesce()
	}
	db.gen++
	gen := db.gen
	db.pending = fn
	db.timer = time.AfterFunc(db.delay, func() { db.fire(gen) })
	return true
}

// fire runs the pending call if it is still the one scheduled as gen.
// A timer that lost the race with Trigger or Cancel finds a newer gen and exits.
func (db *Debouncer) fire(gen uint64) {
	db.mu.Lock()
	if gen != db.gen || db.pending == nil {
		db.mu.Unlock()
		return
	}
	fn := db.pending
	db.pending = nil
	db.timer = nil
	db.running.Add(1)
	db.mu.Unlock()

	db.run(fn)
}

func (db *Debouncer) run(fn func()) {
	defer db.running.Done()
	if db.onFire != nil {
		db.onFire()
	}
	fn()
}

// Cancel drops the pending call, if any, and reports whether one was dropped.
func (db *Debouncer) Cancel() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.cancelLocked()
}

func (db *Debouncer) cancelLocked() bool {
	if db.pending == nil {
		return false
	}
	if db.timer != nil {
		db.timer.Stop()
	}
	db.gen++
	db.pending = nil
	db.timer = nil
	return true
}

// Flush runs the pending call now on the caller's goroutine and reports
// whether there was one.
func (db *Debouncer) Flush() bool {
	db.mu.Lock()
	fn := db.pending
	if fn == nil {
		db.mu.Unlock()
		return false
	}
	db.cancelLocked()
	db.running.Add(1)
	db.mu.Unlock()

	db.run(fn)
	return true
}

// Pending reports whether a call is scheduled.
func (db *Debouncer) Pending() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.pending != nil
}

// Stop cancels the pending call, rejects further triggers and waits for a
// call already running. It must not be called from inside a triggered function.
func (db *Debouncer) Stop() {
	db.mu.Lock()
	db.cancelLocked()
	db.stopped = true
	db.mu.Unlock()
	db.running.Wait()
}
