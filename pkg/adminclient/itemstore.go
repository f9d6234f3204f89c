package adminclient

import "sync"

// ItemStore separates confirmed (server-acknowledged) item state from
// pending optimistic edits. Reads see the optimistic value; a successful
// mutation collapses it into confirmed state, a failed one rolls back to the
// last confirmed value instead of leaving the unconfirmed edit in place.
type ItemStore[K comparable, V any] struct {
	mu        sync.Mutex
	confirmed map[K]V
	pending   map[K]V
}

func NewItemStore[K comparable, V any]() *ItemStore[K, V] {
	return &ItemStore[K, V]{
		confirmed: make(map[K]V),
		pending:   make(map[K]V),
	}
}

// Get returns the visible value: the pending edit when one exists, the
// confirmed value otherwise.
func (s *ItemStore[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.pending[key]; ok {
		return v, true
	}
	v, ok := s.confirmed[key]
	return v, ok
}

// Confirm records server truth for key and clears any pending edit.
func (s *ItemStore[K, V]) Confirm(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.confirmed[key] = value
	delete(s.pending, key)
}

// Stage applies an optimistic edit visible to readers but not yet
// acknowledged by the server.
func (s *ItemStore[K, V]) Stage(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[key] = value
}

// Rollback discards the pending edit, restoring the last confirmed value.
func (s *ItemStore[K, V]) Rollback(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
}

// Remove forgets the item entirely (after a confirmed delete).
func (s *ItemStore[K, V]) Remove(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.confirmed, key)
	delete(s.pending, key)
}
