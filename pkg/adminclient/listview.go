package adminclient

import "sync"

// State is a list screen's lifecycle: idle until the first query, loading
// while a fetch is in flight, then ready or errored. A new query always
// returns to loading and clears the previous items.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// ListView holds one screen's list state and guards against out-of-order
// responses: every fetch gets a sequence number from Begin, and only the
// response matching the latest sequence is applied. A superseded response is
// discarded instead of silently overwriting newer data.
type ListView[T any] struct {
	mu         sync.Mutex
	seq        uint64
	state      State
	items      []T
	pagination Pagination
	err        error
}

// Begin starts a new fetch: clears the current items, enters loading and
// returns the sequence number the eventual response must present.
func (v *ListView[T]) Begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	v.state = StateLoading
	v.items = nil
	v.err = nil
	return v.seq
}

// Complete applies a successful response. Returns false (and changes
// nothing) when a newer fetch has started since seq was issued.
func (v *ListView[T]) Complete(seq uint64, items []T, p Pagination) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		return false
	}
	v.state = StateReady
	v.items = items
	v.pagination = p
	v.err = nil
	return true
}

// Fail applies a failed response, with the same staleness rule as Complete.
func (v *ListView[T]) Fail(seq uint64, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		return false
	}
	v.state = StateErrored
	v.err = err
	return true
}

// Drop removes the first item matching fn and provisionally decrements the
// total, the optimistic bookkeeping after a delete. The next Complete
// replaces both with server truth.
func (v *ListView[T]) Drop(fn func(T) bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, item := range v.items {
		if fn(item) {
			v.items = append(v.items[:i:i], v.items[i+1:]...)
			if v.pagination.Total > 0 {
				v.pagination.Total--
			}
			return true
		}
	}
	return false
}

// Snapshot returns the current state for rendering. The item slice is
// shared; treat it as read-only.
func (v *ListView[T]) Snapshot() (State, []T, Pagination, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.items, v.pagination, v.err
}
