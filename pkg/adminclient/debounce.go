package adminclient

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is how long search input must be idle before a list
// call goes out.
const DefaultQuietPeriod = 400 * time.Millisecond

// Debouncer coalesces rapid search-text changes: each Trigger cancels any
// pending call and re-arms the quiet period, so only the last value in a
// burst reaches the network. Discrete filter or page changes should bypass
// it and call immediately.
type Debouncer struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a debouncer with the given quiet period, or
// DefaultQuietPeriod when d is zero.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultQuietPeriod
	}
	return &Debouncer{quiet: d}
}

// Trigger schedules fn after the quiet period, replacing any pending call.
// fn runs on a timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
