package adminclient

import (
	"sync"
	"testing"
	"time"
)

// Keystrokes arriving faster than the quiet period must collapse into one
// call carrying the final value.
func TestDebouncerOnlyFinalValueFires(t *testing.T) {
	d := NewDebouncer(40 * time.Millisecond)

	var mu sync.Mutex
	var fired []string

	for _, value := range []string{"m", "ma", "mar", "maria"} {
		v := value
		d.Trigger(func() {
			mu.Lock()
			fired = append(fired, v)
			mu.Unlock()
		})
		time.Sleep(10 * time.Millisecond) // well inside the quiet period
	}

	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 || fired[0] != "maria" {
		t.Errorf("fired = %v, want [maria]", fired)
	}
}

func TestDebouncerSeparatedTriggersAllFire(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	count := 0

	for i := 0; i < 3; i++ {
		d.Trigger(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
		time.Sleep(60 * time.Millisecond) // past the quiet period each time
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	count := 0

	d.Trigger(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})
	d.Stop()

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("count = %d, want 0 after Stop", count)
	}
}

func TestDebouncerZeroUsesDefault(t *testing.T) {
	d := NewDebouncer(0)
	if d.quiet != DefaultQuietPeriod {
		t.Errorf("quiet = %v, want %v", d.quiet, DefaultQuietPeriod)
	}
}
